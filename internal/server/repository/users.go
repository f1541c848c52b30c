package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create вставляет нового пользователя. id и created_at генерирует база.
//
// Уникальность email дополнительно закреплена UNIQUE-индексом: если два
// конкурентных запроса проскочили проверку в сервисе, проигравший получит
// ErrAlreadyExists от базы (23505).
func (r *UsersRepository) Create(ctx context.Context, email, passwordHash string) (models.User, error) {
	u := models.User{
		Email:        email,
		PasswordHash: passwordHash,
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash)
		 VALUES ($1,$2)
		 RETURNING id, created_at`,
		email, passwordHash,
	).Scan(&u.ID, &u.CreatedAt)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" { // unique_violation
				return models.User{}, serr.ErrAlreadyExists
			}
		}
		return models.User{}, serr.ErrInternal
	}

	return u, nil
}

// GetByEmail ищет пользователя по точному совпадению email (case-sensitive).
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User

	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email=$1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, serr.ErrInternal
	}

	return u, nil
}

// GetByID ищет пользователя по id (subject из токена).
func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var u models.User

	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE id=$1`,
		id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, serr.ErrInternal
	}

	return u, nil
}

// Exists сообщает, существует ли пользователь. Используется auth middleware.
func (r *UsersRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool

	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`,
		id,
	).Scan(&exists)

	if err != nil {
		return false, serr.ErrInternal
	}

	return exists, nil
}
