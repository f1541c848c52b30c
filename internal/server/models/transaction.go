// Серверная модель транзакции (доход/расход)
package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType — закрытый enum типа транзакции.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid сообщает, входит ли тип в закрытый enum.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction — запись о доходе или расходе одного пользователя.
//
// Date хранится строкой и сортируется лексикографически (клиенты передают
// сортируемый формат, например ISO 8601). Amount — число без привязки к валюте.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        TransactionType
	Date        string
	Description string
	Category    string
	Amount      float64
	CreatedAt   time.Time
}
