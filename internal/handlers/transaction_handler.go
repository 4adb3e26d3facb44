package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "uangsaku/internal/errors"
	"uangsaku/internal/models"
	"uangsaku/internal/services"
)

// TransactionHandler handles transaction record requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for recording a
// transaction. Every field is optional; the repository fills defaults.
type CreateTransactionRequest struct {
	Type     models.TransactionType `json:"type" binding:"omitempty,txn_type"`
	Amount   float64                `json:"amount" binding:"omitempty,gte=0"`
	Date     string                 `json:"date" binding:"omitempty,isodate"`
	Category string                 `json:"category"`
	Note     string                 `json:"note"`
}

// UpdateTransactionRequest represents the request payload for updating a
// transaction. Absent fields keep their stored values.
type UpdateTransactionRequest struct {
	Type     *models.TransactionType `json:"type" binding:"omitempty,txn_type"`
	Amount   *float64                `json:"amount" binding:"omitempty,gte=0"`
	Date     *string                 `json:"date" binding:"omitempty,isodate"`
	Category *string                 `json:"category"`
	Note     *string                 `json:"note"`
}

// CreateTransaction handles recording a new transaction.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	txn, err := h.transactionService.Add(services.TransactionInput{
		Type:     req.Type,
		Amount:   req.Amount,
		Date:     req.Date,
		Category: req.Category,
		Note:     req.Note,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": txn})
}

// GetTransactions handles the filtered transaction listing.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	filter := services.TransactionFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Category:  c.Query("category"),
		Query:     c.Query("q"),
	}

	transactions, err := h.transactionService.List(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// GetTransactionByID handles fetching a single transaction.
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	txn, err := h.transactionService.Get(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}

// UpdateTransaction handles updating an existing transaction.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	txn, err := h.transactionService.Update(id, services.TransactionChanges{
		Type:     req.Type,
		Amount:   req.Amount,
		Date:     req.Date,
		Category: req.Category,
		Note:     req.Note,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": txn})
}

// DeleteTransaction handles deleting a transaction. Deleting an unknown id
// succeeds.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
