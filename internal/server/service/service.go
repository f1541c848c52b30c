// Package service содержит бизнес-логику приложения (FinTrack).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/models"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users        UsersRepo
	Transactions TransactionsRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth         *AuthService
	Transactions *TransactionsService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (параметры хеширования пароля и выпуска токенов).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:         NewAuthService(repos.Users, cfg),
		Transactions: NewTransactionsService(repos.Transactions),
	}
}

// UsersRepo — репозиторий пользователей (нужен для auth/register/login).
type UsersRepo interface {
	Create(ctx context.Context, email, passwordHash string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

// TransactionFilter — опциональное сужение выборки транзакций.
// nil-поле означает «без фильтра», сравнение точное.
type TransactionFilter struct {
	Type     *string
	Category *string
}

// TransactionUpdate — частичное обновление транзакции.
// Применяются только non-nil поля; обнулить поле этим типом нельзя.
type TransactionUpdate struct {
	Type        *string
	Date        *string
	Description *string
	Category    *string
	Amount      *float64
}

// TransactionsRepo — репозиторий транзакций (CRUD, всё ограничено владельцем).
type TransactionsRepo interface {
	Create(ctx context.Context, t models.Transaction) error
	List(ctx context.Context, userID uuid.UUID, f TransactionFilter) ([]models.Transaction, error)
	Update(ctx context.Context, userID, id uuid.UUID, upd TransactionUpdate) (models.Transaction, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
