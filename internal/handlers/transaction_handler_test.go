package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "uangsaku/internal/errors"
	"uangsaku/internal/models"
	"uangsaku/internal/services"
)

// --- mock transaction service ---

type mockTransactionService struct {
	addFn    func(input services.TransactionInput) (*models.Transaction, error)
	getFn    func(id uint) (*models.Transaction, error)
	updateFn func(id uint, changes services.TransactionChanges) (*models.Transaction, error)
	deleteFn func(id uint) error
	listFn   func(filter services.TransactionFilter) ([]models.Transaction, error)
	clearFn  func() error
}

func (m *mockTransactionService) Add(input services.TransactionInput) (*models.Transaction, error) {
	if m.addFn != nil {
		return m.addFn(input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) Get(id uint) (*models.Transaction, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) Update(id uint, changes services.TransactionChanges) (*models.Transaction, error) {
	if m.updateFn != nil {
		return m.updateFn(id, changes)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) Delete(id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func (m *mockTransactionService) List(filter services.TransactionFilter) ([]models.Transaction, error) {
	if m.listFn != nil {
		return m.listFn(filter)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) Clear() error {
	if m.clearFn != nil {
		return m.clearFn()
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/transactions", handler.CreateTransaction)
	r.GET("/transactions", handler.GetTransactions)
	r.GET("/transactions/:id", handler.GetTransactionByID)
	r.PUT("/transactions/:id", handler.UpdateTransaction)
	r.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockTransactionService{
			addFn: func(input services.TransactionInput) (*models.Transaction, error) {
				return &models.Transaction{
					ID:       1,
					Type:     input.Type,
					Amount:   input.Amount,
					Date:     input.Date,
					Category: input.Category,
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"expense","amount":15000,"date":"2024-05-01","category":"Makanan/Minuman"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		txn := result["transaction"].(map[string]interface{})
		if txn["amount"] != float64(15000) {
			t.Errorf("expected amount 15000, got %v", txn["amount"])
		}
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions", `{"type":"transfer"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "INVALID_INPUT" {
			t.Errorf("expected INVALID_INPUT, got %s", code)
		}
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions", `{"date":"01/05/2024"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("empty payload uses defaults", func(t *testing.T) {
		var captured services.TransactionInput
		svc := &mockTransactionService{
			addFn: func(input services.TransactionInput) (*models.Transaction, error) {
				captured = input
				return &models.Transaction{ID: 7}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "POST", "/transactions", `{}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Type != "" || captured.Date != "" {
			t.Errorf("expected empty input to flow to the repository, got %+v", captured)
		}
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		var captured services.TransactionFilter
		svc := &mockTransactionService{
			listFn: func(filter services.TransactionFilter) ([]models.Transaction, error) {
				captured = filter
				return []models.Transaction{{ID: 1, Date: "2024-01-02"}}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "GET", "/transactions?start_date=2024-01-01&end_date=2024-01-31&category=all&q=kopi", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if captured.StartDate != "2024-01-01" || captured.EndDate != "2024-01-31" {
			t.Errorf("unexpected date filters: %+v", captured)
		}
		if captured.Category != "all" || captured.Query != "kopi" {
			t.Errorf("unexpected filters: %+v", captured)
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	t.Run("returns 404 for unknown id", func(t *testing.T) {
		svc := &mockTransactionService{
			updateFn: func(id uint, changes services.TransactionChanges) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "PUT", "/transactions/999", `{"amount":1}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "TRANSACTION_NOT_FOUND" {
			t.Errorf("expected TRANSACTION_NOT_FOUND, got %s", code)
		}
	})

	t.Run("rejects non-numeric id", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "PUT", "/transactions/abc", `{"amount":1}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("only provided fields are sent as changes", func(t *testing.T) {
		var captured services.TransactionChanges
		svc := &mockTransactionService{
			updateFn: func(id uint, changes services.TransactionChanges) (*models.Transaction, error) {
				captured = changes
				return &models.Transaction{ID: id}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc))

		rec := doRequest(r, "PUT", "/transactions/3", `{"note":"revisi"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if captured.Note == nil || *captured.Note != "revisi" {
			t.Error("expected note change to be present")
		}
		if captured.Amount != nil || captured.Type != nil || captured.Date != nil || captured.Category != nil {
			t.Errorf("expected absent fields to stay nil, got %+v", captured)
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 200", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "DELETE", "/transactions/5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
