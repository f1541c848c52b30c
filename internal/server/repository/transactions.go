package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/models"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

// MaxListResults — жёсткий потолок на количество записей в одной выборке.
// Пагинации нет: всё, что выше потолка, просто не возвращается.
const MaxListResults = 10000

// TransactionsRepository реализует доступ к хранилищу транзакций (PostgreSQL).
// Отвечает исключительно за сохранение и извлечение данных без бизнес-логики.
// Каждый запрос ограничен владельцем записи (user_id).
type TransactionsRepository struct {
	db *sql.DB
}

// NewTransactionsRepository создаёт новый экземпляр TransactionsRepository.
func NewTransactionsRepository(db *sql.DB) *TransactionsRepository {
	return &TransactionsRepository{db: db}
}

// Create сохраняет новую транзакцию. id, user_id и created_at
// уже проставлены сервисом.
func (r *TransactionsRepository) Create(ctx context.Context, t models.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, type, date, description, category, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		t.ID,
		t.UserID,
		string(t.Type),
		t.Date,
		t.Description,
		t.Category,
		t.Amount,
		t.CreatedAt,
	)

	if err != nil {
		return serr.ErrInternal
	}

	return nil
}

// List возвращает транзакции пользователя, опционально суженные точным
// совпадением type и/или category.
//
// Сортировка: date по убыванию, лексикографически (строка, НЕ календарь).
// Вторичный ключ created_at фиксирует стабильный порядок при равных датах.
func (r *TransactionsRepository) List(ctx context.Context, userID uuid.UUID, f service.TransactionFilter) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, type, date, description, category, amount, created_at
		FROM transactions
		WHERE user_id = $1
		  AND ($2::text IS NULL OR type = $2)
		  AND ($3::text IS NULL OR category = $3)
		ORDER BY date DESC, created_at ASC
		LIMIT $4
	`,
		userID,
		f.Type,
		f.Category,
		MaxListResults,
	)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	out := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		var typ string
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&typ,
			&t.Date,
			&t.Description,
			&t.Category,
			&t.Amount,
			&t.CreatedAt,
		); err != nil {
			return nil, serr.ErrInternal
		}
		t.Type = models.TransactionType(typ)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return out, nil
}

// Update применяет частичное обновление: nil-поля не трогаются (COALESCE).
//
// Запрос сразу проверяет владение: чужой или несуществующий id
// не вернёт ни одной строки — в этом случае ErrTransactionNotFound.
// Возвращается запись после обновления.
func (r *TransactionsRepository) Update(ctx context.Context, userID, id uuid.UUID, upd service.TransactionUpdate) (models.Transaction, error) {
	var t models.Transaction
	var typ string

	err := r.db.QueryRowContext(ctx, `
		UPDATE transactions
		SET type        = COALESCE($1, type),
		    date        = COALESCE($2, date),
		    description = COALESCE($3, description),
		    category    = COALESCE($4, category),
		    amount      = COALESCE($5, amount)
		WHERE id = $6 AND user_id = $7
		RETURNING id, user_id, type, date, description, category, amount, created_at
	`,
		upd.Type,
		upd.Date,
		upd.Description,
		upd.Category,
		upd.Amount,
		id,
		userID,
	).Scan(
		&t.ID,
		&t.UserID,
		&typ,
		&t.Date,
		&t.Description,
		&t.Category,
		&t.Amount,
		&t.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return models.Transaction{}, serr.ErrTransactionNotFound
		}
		return models.Transaction{}, serr.ErrInternal
	}

	t.Type = models.TransactionType(typ)
	return t, nil
}

// Delete удаляет транзакцию пользователя.
//
// Чужая запись не удаляется и неотличима от несуществующей:
// в обоих случаях ErrTransactionNotFound.
func (r *TransactionsRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return serr.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return serr.ErrInternal
	}
	if affected == 0 {
		return serr.ErrTransactionNotFound
	}

	return nil
}
