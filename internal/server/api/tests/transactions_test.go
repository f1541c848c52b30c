package tests

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/models"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
	smodels "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/models"
)

// authedRequest — запрос от имени аутентифицированного пользователя.
func authedRequest(method, target string, body *bytes.Buffer, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

// withURLParam добавляет chi URL-параметр в контекст запроса.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateTransaction(t *testing.T) {
	h, _, transactions := newTestHandler(t)
	userID := uuid.New()

	transactions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	body := bytes.NewBufferString(`{"type":"expense","date":"2026-08-15","description":"groceries","category":"food","amount":42.5}`)
	req := authedRequest(http.MethodPost, "/transactions", body, userID)
	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %q)", rec.Code, rec.Body.String())
	}

	var resp smodels.Transaction
	decodeBody(t, rec, &resp)
	if resp.ID == "" || resp.UserID != userID.String() {
		t.Fatalf("unexpected transaction: %+v", resp)
	}
	if resp.Type != "expense" || resp.Amount != 42.5 || resp.Category != "food" {
		t.Fatalf("unexpected transaction: %+v", resp)
	}
}

func TestCreateTransaction_UnknownType(t *testing.T) {
	h, _, _ := newTestHandler(t)
	userID := uuid.New()

	body := bytes.NewBufferString(`{"type":"transfer","date":"2026-08-15","category":"misc","amount":1}`)
	req := authedRequest(http.MethodPost, "/transactions", body, userID)
	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d (body %q)", rec.Code, rec.Body.String())
	}
}

func TestCreateTransaction_MissingAmount(t *testing.T) {
	h, _, _ := newTestHandler(t)
	userID := uuid.New()

	body := bytes.NewBufferString(`{"type":"expense","date":"2026-08-15","category":"food"}`)
	req := authedRequest(http.MethodPost, "/transactions", body, userID)
	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestCreateTransaction_BadJSON(t *testing.T) {
	h, _, _ := newTestHandler(t)
	userID := uuid.New()

	body := bytes.NewBufferString(`{broken`)
	req := authedRequest(http.MethodPost, "/transactions", body, userID)
	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListTransactions(t *testing.T) {
	h, _, transactions := newTestHandler(t)
	userID := uuid.New()

	list := []models.Transaction{
		{
			ID: uuid.New(), UserID: userID, Type: models.TypeExpense,
			Date: "2026-08-15", Category: "food", Amount: 42.5,
			CreatedAt: time.Now().UTC(),
		},
		{
			ID: uuid.New(), UserID: userID, Type: models.TypeIncome,
			Date: "2026-08-01", Category: "salary", Amount: 1000,
			CreatedAt: time.Now().UTC(),
		},
	}

	transactions.EXPECT().List(gomock.Any(), userID, service.TransactionFilter{}).
		Return(list, nil)

	req := authedRequest(http.MethodGet, "/transactions", nil, userID)
	rec := httptest.NewRecorder()
	h.ListTransactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// контракт: голый JSON-массив
	var resp []smodels.Transaction
	decodeBody(t, rec, &resp)
	if len(resp) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(resp))
	}
	if resp[0].Date != "2026-08-15" || resp[1].Date != "2026-08-01" {
		t.Fatalf("order must be preserved: %+v", resp)
	}
}

func TestListTransactions_Empty(t *testing.T) {
	h, _, transactions := newTestHandler(t)
	userID := uuid.New()

	transactions.EXPECT().List(gomock.Any(), userID, service.TransactionFilter{}).
		Return([]models.Transaction{}, nil)

	req := authedRequest(http.MethodGet, "/transactions", nil, userID)
	rec := httptest.NewRecorder()
	h.ListTransactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	// пустой список сериализуется как [], а не null
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestListTransactions_QueryFilters(t *testing.T) {
	h, _, transactions := newTestHandler(t)
	userID := uuid.New()

	transactions.EXPECT().List(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, f service.TransactionFilter) ([]models.Transaction, error) {
			if f.Type == nil || *f.Type != "income" {
				t.Fatalf("expected type filter income, got %+v", f)
			}
			if f.Category == nil || *f.Category != "salary" {
				t.Fatalf("expected category filter salary, got %+v", f)
			}
			return []models.Transaction{}, nil
		})

	req := authedRequest(http.MethodGet, "/transactions?type=income&category=salary", nil, userID)
	rec := httptest.NewRecorder()
	h.ListTransactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUpdateTransaction(t *testing.T) {
	h, _, transactions := newTestHandler(t)
	userID := uuid.New()
	txID := uuid.New()

	updated := models.Transaction{
		ID: txID, UserID: userID, Type: models.TypeExpense,
		Date: "2026-08-15", Category: "food", Amount: 99.99,
		CreatedAt: time.Now().UTC(),
	}

	transactions.EXPECT().Update(gomock.Any(), userID, txID, gomock.Any()).
		Return(updated, nil)

	body := bytes.NewBufferString(`{"amount":99.99}`)
	req := authedRequest(http.MethodPut, "/transactions/"+txID.String(), body, userID)
	req = withURLParam(req, "id", txID.String())
	rec := httptest.NewRecorder()
	h.UpdateTransaction(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %q)", rec.Code, rec.Body.String())
	}

	var resp smodels.Transaction
	decodeBody(t, rec, &resp)
	if resp.ID != txID.String() || resp.Amount != 99.99 {
		t.Fatalf("unexpected transaction: %+v", resp)
	}
}

func TestUpdateTransaction_BadID(t *testing.T) {
	h, _, _ := newTestHandler(t)
	userID := uuid.New()

	// некорректный uuid неотличим от несуществующего — 404
	body := bytes.NewBufferString(`{"amount":1}`)
	req := authedRequest(http.MethodPut, "/transactions/not-a-uuid", body, userID)
	req = withURLParam(req, "id", "not-a-uuid")
	rec := httptest.NewRecorder()
	h.UpdateTransaction(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	h, _, transactions := newTestHandler(t)
	userID := uuid.New()
	txID := uuid.New()

	transactions.EXPECT().Update(gomock.Any(), userID, txID, gomock.Any()).
		Return(models.Transaction{}, serr.ErrTransactionNotFound)

	body := bytes.NewBufferString(`{"amount":1}`)
	req := authedRequest(http.MethodPut, "/transactions/"+txID.String(), body, userID)
	req = withURLParam(req, "id", txID.String())
	rec := httptest.NewRecorder()
	h.UpdateTransaction(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteTransaction(t *testing.T) {
	h, _, transactions := newTestHandler(t)
	userID := uuid.New()
	txID := uuid.New()

	transactions.EXPECT().Delete(gomock.Any(), userID, txID).Return(nil)

	req := authedRequest(http.MethodDelete, "/transactions/"+txID.String(), nil, userID)
	req = withURLParam(req, "id", txID.String())
	rec := httptest.NewRecorder()
	h.DeleteTransaction(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp smodels.DeleteTransactionResponse
	decodeBody(t, rec, &resp)
	if resp.Message != "Transaction deleted successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	h, _, transactions := newTestHandler(t)
	userID := uuid.New()
	txID := uuid.New()

	transactions.EXPECT().Delete(gomock.Any(), userID, txID).
		Return(serr.ErrTransactionNotFound)

	req := authedRequest(http.MethodDelete, "/transactions/"+txID.String(), nil, userID)
	req = withURLParam(req, "id", txID.String())
	rec := httptest.NewRecorder()
	h.DeleteTransaction(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSummary(t *testing.T) {
	h, _, transactions := newTestHandler(t)
	userID := uuid.New()

	transactions.EXPECT().List(gomock.Any(), userID, service.TransactionFilter{}).
		Return([]models.Transaction{
			{ID: uuid.New(), UserID: userID, Type: models.TypeIncome, Date: "2026-08-01", Category: "salary", Amount: 1000},
			{ID: uuid.New(), UserID: userID, Type: models.TypeExpense, Date: "2026-08-15", Category: "food", Amount: 300},
		}, nil)

	req := authedRequest(http.MethodGet, "/transactions/summary", nil, userID)
	rec := httptest.NewRecorder()
	h.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp smodels.Summary
	decodeBody(t, rec, &resp)
	if resp.TotalIncome != 1000 || resp.TotalExpenses != 300 {
		t.Fatalf("unexpected summary: %+v", resp)
	}
	if resp.NetIncome != 700 || resp.TransactionCount != 2 {
		t.Fatalf("unexpected summary: %+v", resp)
	}
}

func TestStats(t *testing.T) {
	h, _, transactions := newTestHandler(t)
	userID := uuid.New()

	transactions.EXPECT().List(gomock.Any(), userID, service.TransactionFilter{}).
		Return([]models.Transaction{
			{ID: uuid.New(), UserID: userID, Type: models.TypeExpense, Date: "2026-08-15", Category: "food", Amount: 400},
			{ID: uuid.New(), UserID: userID, Type: models.TypeExpense, Date: "2026-08-16", Category: "rent", Amount: 600},
		}, nil)

	req := authedRequest(http.MethodGet, "/transactions/stats", nil, userID)
	rec := httptest.NewRecorder()
	h.Stats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp smodels.Stats
	decodeBody(t, rec, &resp)
	if len(resp.ExpenseByCategory) != 2 {
		t.Fatalf("expected 2 expense categories, got %d", len(resp.ExpenseByCategory))
	}
	if len(resp.IncomeByCategory) != 0 {
		t.Fatalf("expected no income categories, got %d", len(resp.IncomeByCategory))
	}

	for _, cs := range resp.ExpenseByCategory {
		switch cs.Category {
		case "food":
			if cs.Percentage != 40 {
				t.Fatalf("expected food 40%%, got %v", cs.Percentage)
			}
		case "rent":
			if cs.Percentage != 60 {
				t.Fatalf("expected rent 60%%, got %v", cs.Percentage)
			}
		default:
			t.Fatalf("unexpected category %q", cs.Category)
		}
	}
}

func TestTransactions_NoAuthContext(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	rec := httptest.NewRecorder()
	h.ListTransactions(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
