package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
	smodels "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/models"
)

func toTransactionResponse(t models.Transaction) smodels.Transaction {
	return smodels.Transaction{
		ID:          t.ID.String(),
		UserID:      t.UserID.String(),
		Type:        string(t.Type),
		Date:        t.Date,
		Description: t.Description,
		Category:    t.Category,
		Amount:      t.Amount,
		CreatedAt:   t.CreatedAt,
	}
}

// writeTransactionError — общий маппинг ошибок транзакционных хендлеров.
func (h *Handler) writeTransactionError(w http.ResponseWriter, op string, userID uuid.UUID, err error) {
	switch {
	case errors.Is(err, serr.ErrUnknownTransactionType), errors.Is(err, serr.ErrInvalidInput):
		WriteError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, serr.ErrTransactionNotFound):
		WriteError(w, http.StatusNotFound, err)
	case errors.Is(err, serr.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, err)
	default:
		h.Log.Logger.Sugar().Errorw(op+" failed",
			"error", err,
			"user_id", userID.String(),
		)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
	}
}

// CreateTransaction создаёт новую транзакцию для аутентифицированного пользователя.
//
// Сервер:
//   - валидирует тип транзакции (income|expense) и обязательные поля;
//   - проставляет id, владельца и created_at;
//   - дату не проверяет (она хранится как сортируемая строка).
//
// Требует JWT-аутентификацию.
//
// @Summary      Create transaction
// @Description  Creates a new income/expense record for the authenticated user.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.CreateTransactionRequest true "Create transaction request"
// @Success      200 {object} models.Transaction
// @Failure      400 {object} ErrorResponse "Bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      422 {object} ErrorResponse "Invalid type or missing fields"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /transactions [post]
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req smodels.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	t, err := h.Svc.Transactions.Create(r.Context(), userID, req)
	if err != nil {
		h.writeTransactionError(w, "create transaction", userID, err)
		return
	}

	WriteJSON(w, http.StatusOK, toTransactionResponse(t))
}

// ListTransactions возвращает транзакции текущего пользователя.
//
// Поддерживает query-параметры type и category (точное совпадение).
// Результат отсортирован по дате по убыванию (лексикографически)
// и ограничен потолком выборки.
//
// @Summary      List transactions
// @Description  Returns transactions of the authenticated user, newest date first.
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        type     query string false "income|expense"
// @Param        category query string false "Category filter (exact match)"
// @Success      200 {array} models.Transaction
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /transactions [get]
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	list, err := h.Svc.Transactions.List(
		r.Context(),
		userID,
		r.URL.Query().Get("type"),
		r.URL.Query().Get("category"),
	)
	if err != nil {
		h.writeTransactionError(w, "list transactions", userID, err)
		return
	}

	// контракт отдаёт голый массив, без обёртки
	out := make([]smodels.Transaction, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionResponse(t))
	}

	WriteJSON(w, http.StatusOK, out)
}

// UpdateTransaction частично обновляет транзакцию пользователя.
//
// Идентификатор передаётся в URL-параметре {id}. Применяются только
// переданные (non-null) поля; отсутствующие не трогаются, обнулить поле
// этим запросом нельзя. Возвращается запись после обновления.
//
// Чужая или несуществующая запись — Not Found (без различия).
//
// @Summary      Update transaction
// @Description  Applies only the supplied fields and returns the updated record.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string true "Transaction ID (UUID)"
// @Param        request body models.UpdateTransactionRequest true "Fields to update"
// @Success      200 {object} models.Transaction
// @Failure      400 {object} ErrorResponse "Bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      422 {object} ErrorResponse "Invalid type"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /transactions/{id} [put]
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	txID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// некорректный id неотличим от несуществующего
		WriteError(w, http.StatusNotFound, serr.ErrTransactionNotFound)
		return
	}

	var req smodels.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	t, err := h.Svc.Transactions.Update(r.Context(), userID, txID, req)
	if err != nil {
		h.writeTransactionError(w, "update transaction", userID, err)
		return
	}

	WriteJSON(w, http.StatusOK, toTransactionResponse(t))
}

// DeleteTransaction удаляет транзакцию пользователя.
//
// Чужая запись не удаляется и отвечает так же, как несуществующая,
// чтобы по ответу нельзя было понять, есть ли она вообще.
//
// @Summary      Delete transaction
// @Description  Deletes a transaction owned by the authenticated user.
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Transaction ID (UUID)"
// @Success      200 {object} models.DeleteTransactionResponse
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /transactions/{id} [delete]
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	txID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrTransactionNotFound)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	if err := h.Svc.Transactions.Delete(r.Context(), userID, txID); err != nil {
		h.writeTransactionError(w, "delete transaction", userID, err)
		return
	}

	WriteJSON(w, http.StatusOK, smodels.DeleteTransactionResponse{
		Message: "Transaction deleted successfully",
	})
}

// Summary возвращает сводку по всем транзакциям пользователя.
//
// @Summary      Transactions summary
// @Description  Totals by type, net income and record count.
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.Summary
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /transactions/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	sum, err := h.Svc.Transactions.Summary(r.Context(), userID)
	if err != nil {
		h.writeTransactionError(w, "summary", userID, err)
		return
	}

	WriteJSON(w, http.StatusOK, sum)
}

// Stats возвращает статистику по категориям, раздельно для расходов и доходов.
//
// @Summary      Category stats
// @Description  Per-category totals, counts and percentages, expenses and incomes grouped independently.
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.Stats
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /transactions/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	stats, err := h.Svc.Transactions.CategoryStats(r.Context(), userID)
	if err != nil {
		h.writeTransactionError(w, "stats", userID, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}
