package models

import "time"

// Transaction — плоская модель транзакции, используемая в HTTP API.
//
// Поля:
//   - ID: уникальный идентификатор транзакции (UUID в виде строки)
//   - UserID: владелец записи; все выборки всегда ограничены владельцем
//   - Type: income | expense
//   - Date: дата в виде сортируемой строки (клиент передаёт ISO 8601)
//   - Description: произвольное описание
//   - Category: произвольная категория (рекомендуемый словарь не навязывается)
//   - Amount: сумма без привязки к валюте
//   - CreatedAt: время создания записи (серверное, UTC)
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTransactionRequest — запрос на создание транзакции.
//
// Используется в:
//
//	POST /transactions
//
// Все поля обязательны. Amount — указатель, чтобы отличать отсутствующее
// поле от нуля. Description может быть пустой строкой (свободный текст).
type CreateTransactionRequest struct {
	Type        string   `json:"type"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Amount      *float64 `json:"amount"`
}

// UpdateTransactionRequest — запрос на частичное обновление транзакции по ID.
//
// Используется в:
//
//	PUT /transactions/{id}
//
// Все поля — указатели: применяются только переданные (non-null) значения,
// отсутствующие поля остаются без изменений. Обнулить поле через этот
// запрос нельзя: null неотличим от «не передано».
type UpdateTransactionRequest struct {
	Type        *string  `json:"type,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
}

// Summary — ответ эндпоинта сводки по всем транзакциям пользователя.
//
// Используется в:
//
//	GET /transactions/summary
//
// NetIncome всегда равен TotalIncome - TotalExpenses.
type Summary struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpenses    float64 `json:"total_expenses"`
	NetIncome        float64 `json:"net_income"`
	TransactionCount int     `json:"transaction_count"`
}

// CategoryStats — агрегат по одной категории внутри одного типа.
//
// Percentage — доля категории от итога своего типа, округлённая до 2 знаков;
// 0, если итог типа нулевой.
type CategoryStats struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// Stats — ответ эндпоинта статистики по категориям.
//
// Используется в:
//
//	GET /transactions/stats
//
// Расходы и доходы группируются независимо; порядок категорий не определён.
type Stats struct {
	ExpenseByCategory []CategoryStats `json:"expense_by_category"`
	IncomeByCategory  []CategoryStats `json:"income_by_category"`
}

// DeleteTransactionResponse — ответ на успешное удаление.
//
// Возможный контракт:
//
//	{"message": "Transaction deleted successfully"}
type DeleteTransactionResponse struct {
	Message string `json:"message"`
}
