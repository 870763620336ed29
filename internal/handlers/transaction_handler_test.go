package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "opsdeck/internal/errors"
	"opsdeck/internal/models"
	"opsdeck/internal/services"
	"opsdeck/internal/validator"
)

// --- mock services ---

type mockTransactionService struct {
	createTransactionFn   func(userID uint, txType models.TransactionType, amount float64, category, description, date string) (*models.Transaction, error)
	getUserTransactionsFn func(ctx context.Context, userID uint) ([]models.Transaction, error)
	deleteTransactionFn   func(userID, transactionID uint) error
}

func (m *mockTransactionService) CreateTransaction(userID uint, txType models.TransactionType, amount float64, category, description, date string) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, txType, amount, category, description, date)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetUserTransactions(ctx context.Context, userID uint) ([]models.Transaction, error) {
	if m.getUserTransactionsFn != nil {
		return m.getUserTransactionsFn(ctx, userID)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, transactionID uint) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

type mockAuditService struct{}

func (m *mockAuditService) Log(_ uint, _, _ string, _ uint, _ string, _ map[string]interface{}) {}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.GET("/transactions", handler.GetTransactions)
	auth.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func injectUserID(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(userID uint, txType models.TransactionType, amount float64, category, _, date string) (*models.Transaction, error) {
				return &models.Transaction{
					Base:     models.Base{ID: 1},
					UserID:   userID,
					Type:     txType,
					Amount:   amount,
					Category: category,
					Date:     date,
				}, nil
			},
		}
		handler := NewTransactionHandler(svc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"income","amount":1250.50,"category":"Salary","date":"2026-08-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		tx := result["transaction"].(map[string]interface{})
		if tx["amount"].(float64) != 1250.50 {
			t.Errorf("expected amount 1250.50, got %v", tx["amount"])
		}
	})

	t.Run("returns 400 on bad type", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"transfer","amount":10,"category":"Misc"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on bad date format", func(t *testing.T) {
		handler := NewTransactionHandler(&mockTransactionService{}, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "POST", "/transactions",
			`{"type":"expense","amount":10,"category":"Misc","date":"08/01/2026"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when service says not found", func(t *testing.T) {
		svc := &mockTransactionService{
			deleteTransactionFn: func(_, _ uint) error {
				return apperrors.ErrTransactionNotFound
			},
		}
		handler := NewTransactionHandler(svc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "DELETE", "/transactions/42", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}

func TestTransactionHandler_GetTransactions(t *testing.T) {
	t.Run("paginates cached ledger", func(t *testing.T) {
		svc := &mockTransactionService{
			getUserTransactionsFn: func(_ context.Context, _ uint) ([]models.Transaction, error) {
				txs := make([]models.Transaction, 25)
				for i := range txs {
					txs[i] = models.Transaction{Base: models.Base{ID: uint(i + 1)}, Type: models.TransactionTypeExpense, Amount: 1}
				}
				return txs, nil
			},
		}
		handler := NewTransactionHandler(svc, &mockAuditService{})
		r := setupTransactionRouter(handler)

		rec := doRequest(r, "GET", "/transactions?page=2&page_size=20", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 5 {
			t.Errorf("expected 5 items on page 2, got %d", len(data))
		}
		if result["total_items"].(float64) != 25 {
			t.Errorf("expected total_items 25, got %v", result["total_items"])
		}
	})
}
