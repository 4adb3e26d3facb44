package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "uangsaku/internal/errors"
	"uangsaku/internal/services"
)

// BudgetHandler handles budget limit requests.
type BudgetHandler struct {
	budgetService      services.BudgetServicer
	transactionService services.TransactionServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, transactionService services.TransactionServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, transactionService: transactionService}
}

// SaveLimitRequest represents the request payload for setting a limit.
type SaveLimitRequest struct {
	Amount float64 `json:"amount" binding:"gte=0"`
}

// GetBudgets handles reading the budget summary.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	budgets, err := h.budgetService.GetBudgets()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// SaveGlobalLimit handles upserting the store-wide limit.
func (h *BudgetHandler) SaveGlobalLimit(c *gin.Context) {
	var req SaveLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.budgetService.SaveGlobalLimit(req.Amount); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Global limit saved"})
}

// SaveCategoryLimit handles upserting a per-category limit.
func (h *BudgetHandler) SaveCategoryLimit(c *gin.Context) {
	category := c.Param("category")

	var req SaveLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.budgetService.SaveCategoryLimit(category, req.Amount); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category limit saved"})
}

// RemoveCategoryLimit handles deleting a per-category limit.
func (h *BudgetHandler) RemoveCategoryLimit(c *gin.Context) {
	if err := h.budgetService.RemoveCategoryLimit(c.Param("category")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category limit removed"})
}

// GetAlerts handles computing budget utilization alerts for the current
// month.
func (h *BudgetHandler) GetAlerts(c *gin.Context) {
	budgets, err := h.budgetService.GetBudgets()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.List(services.TransactionFilter{})
	if err != nil {
		respondWithError(c, err)
		return
	}

	alerts := services.BuildBudgetAlerts(transactions, *budgets)
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
