package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
	smodels "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/models"
)

// TransactionsService реализует бизнес-логику работы с транзакциями.
// Сервис:
//   - валидирует входные данные (закрытый enum типа, обязательные поля);
//   - проставляет серверные поля (id, владелец, created_at);
//   - считает сводку и статистику по категориям;
//   - не знает о HTTP и БД напрямую.
type TransactionsService struct {
	repo TransactionsRepo
}

// NewTransactionsService создаёт новый TransactionsService.
func NewTransactionsService(repo TransactionsRepo) *TransactionsService {
	return &TransactionsService{repo: repo}
}

// Create создаёт новую транзакцию пользователя.
//
// Валидации:
//   - type входит в закрытый enum income|expense;
//   - date и category не пустые;
//   - amount передан (описание может быть пустым текстом).
//
// Дата не проверяется на календарную корректность — это просто сортируемая
// строка. Отрицательный amount принимается как есть.
//
// Ошибки:
//   - ErrUnknownTransactionType, ErrInvalidInput — невалидные данные;
//   - ErrInternal — ошибка хранилища.
func (s *TransactionsService) Create(ctx context.Context, userID uuid.UUID, req smodels.CreateTransactionRequest) (models.Transaction, error) {
	typ := models.TransactionType(strings.TrimSpace(req.Type))
	if !typ.Valid() {
		return models.Transaction{}, serr.ErrUnknownTransactionType
	}
	if req.Date == "" || req.Category == "" || req.Amount == nil {
		return models.Transaction{}, serr.ErrInvalidInput
	}

	t := models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        typ,
		Date:        req.Date,
		Description: req.Description,
		Category:    req.Category,
		Amount:      *req.Amount,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return models.Transaction{}, err
	}
	return t, nil
}

// List возвращает транзакции пользователя, опционально суженные по type
// и/или category (точное совпадение, пустая строка — без фильтра).
//
// Фильтр по несуществующему типу не ошибка: просто пустой результат.
func (s *TransactionsService) List(ctx context.Context, userID uuid.UUID, typeFilter, categoryFilter string) ([]models.Transaction, error) {
	var f TransactionFilter
	if typeFilter != "" {
		f.Type = &typeFilter
	}
	if categoryFilter != "" {
		f.Category = &categoryFilter
	}
	return s.repo.List(ctx, userID, f)
}

// Update применяет частичное обновление транзакции и возвращает запись
// после обновления. Пустое обновление (все поля nil) оставляет запись
// как есть, но всё равно возвращает её.
//
// Ошибки:
//   - ErrUnknownTransactionType — попытка сменить тип на значение вне enum;
//   - ErrTransactionNotFound — нет такой записи у этого пользователя.
func (s *TransactionsService) Update(ctx context.Context, userID, id uuid.UUID, req smodels.UpdateTransactionRequest) (models.Transaction, error) {
	if req.Type != nil && !models.TransactionType(*req.Type).Valid() {
		return models.Transaction{}, serr.ErrUnknownTransactionType
	}

	upd := TransactionUpdate{
		Type:        req.Type,
		Date:        req.Date,
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
	}
	return s.repo.Update(ctx, userID, id, upd)
}

// Delete удаляет транзакцию пользователя.
//
// Ошибки:
//   - ErrTransactionNotFound — нет такой записи у этого пользователя
//     (в том числе когда она есть, но чужая).
func (s *TransactionsService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// Summary считает сводку по всем транзакциям пользователя (в пределах
// потолка выборки): суммы по типам, чистый доход и общее число записей.
func (s *TransactionsService) Summary(ctx context.Context, userID uuid.UUID) (smodels.Summary, error) {
	list, err := s.repo.List(ctx, userID, TransactionFilter{})
	if err != nil {
		return smodels.Summary{}, err
	}

	var sum smodels.Summary
	for _, t := range list {
		switch t.Type {
		case models.TypeIncome:
			sum.TotalIncome += t.Amount
		case models.TypeExpense:
			sum.TotalExpenses += t.Amount
		}
	}
	sum.NetIncome = sum.TotalIncome - sum.TotalExpenses
	sum.TransactionCount = len(list)

	return sum, nil
}

// CategoryStats группирует транзакции пользователя по (тип, категория).
//
// Для каждой категории считаются сумма, количество и её доля от итога
// своего типа (2 знака после запятой). Расходы и доходы — независимые
// группировки, каждая в сумме даёт ~100%. При нулевом итоге типа все
// проценты равны 0. Порядок категорий в ответе не определён.
func (s *TransactionsService) CategoryStats(ctx context.Context, userID uuid.UUID) (smodels.Stats, error) {
	list, err := s.repo.List(ctx, userID, TransactionFilter{})
	if err != nil {
		return smodels.Stats{}, err
	}

	var byType [2][]models.Transaction
	for _, t := range list {
		if t.Type == models.TypeExpense {
			byType[0] = append(byType[0], t)
		} else {
			byType[1] = append(byType[1], t)
		}
	}

	return smodels.Stats{
		ExpenseByCategory: groupByCategory(byType[0]),
		IncomeByCategory:  groupByCategory(byType[1]),
	}, nil
}

// groupByCategory агрегирует транзакции одного типа по категориям.
func groupByCategory(list []models.Transaction) []smodels.CategoryStats {
	type agg struct {
		total float64
		count int
	}

	groups := make(map[string]*agg)
	var typeTotal float64
	for _, t := range list {
		g, ok := groups[t.Category]
		if !ok {
			g = &agg{}
			groups[t.Category] = g
		}
		g.total += t.Amount
		g.count++
		typeTotal += t.Amount
	}

	out := make([]smodels.CategoryStats, 0, len(groups))
	for cat, g := range groups {
		var pct float64
		if typeTotal > 0 {
			pct = round2(g.total / typeTotal * 100)
		}
		out = append(out, smodels.CategoryStats{
			Category:   cat,
			Total:      g.total,
			Percentage: pct,
			Count:      g.count,
		})
	}
	return out
}

// round2 округляет до 2 знаков после запятой.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
