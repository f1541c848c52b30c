package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей
//   - аутентификация (логин)
//   - выпуск bearer-токенов (stateless, отзыва нет — только истечение)
//   - определение текущего пользователя по subject токена
type AuthService struct {
	users UsersRepo

	hasher crypto.Hasher
	jwt    crypto.JWTConfig
}

// AuthResult — результат успешной регистрации или логина:
// свежий bearer-токен и пользователь, на которого он выписан.
type AuthResult struct {
	AccessToken string
	User        models.User
}

// emailRe — минимальная проверка формата email. Регистр НЕ нормализуется:
// email хранится и сравнивается ровно так, как его прислал клиент.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, cfg *config.Config) *AuthService {
	var hasher crypto.Hasher
	switch cfg.Password.Hasher {
	case "bcrypt":
		hasher = crypto.BcryptHasher{Cost: cfg.Password.Bcrypt.Cost}
	default:
		hasher = crypto.Argon2Hasher{Params: crypto.Argon2Params{
			Time:      cfg.Password.Argon2.Time,
			MemoryKiB: cfg.Password.Argon2.MemoryKiB,
			Threads:   cfg.Password.Argon2.Threads,
			KeyLen:    cfg.Password.Argon2.KeyLen,
			SaltLen:   cfg.Password.Argon2.SaltLen,
		}}
	}

	return &AuthService{
		users:  users,
		hasher: hasher,
		jwt: crypto.JWTConfig{
			Issuer:     cfg.Auth.Issuer,
			Audience:   cfg.Auth.Audience,
			SigningKey: cfg.Auth.JWT.SigningKey,
			AccessTTL:  cfg.Auth.AccessTTL,
		},
	}
}

// Register регистрирует нового пользователя и сразу выдаёт токен.
//
// Валидация:
//   - email обязателен и должен быть валидным
//   - пароль обязателен (минимальной длины нет)
//
// Сначала проверяется занятость email (точное совпадение), потом вставка.
// Между проверкой и вставкой возможна гонка двух одинаковых регистраций —
// её ловит UNIQUE-индекс в базе, обе ветки дают ErrAlreadyExists.
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrAlreadyExists
func (s *AuthService) Register(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" || !emailRe.MatchString(email) {
		return AuthResult{}, serr.ErrInvalidInput
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return AuthResult{}, serr.ErrAlreadyExists
	case !errors.Is(err, serr.ErrNotFound):
		return AuthResult{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, serr.ErrInternal
	}

	user, err := s.users.Create(ctx, email, hash)
	if err != nil {
		return AuthResult{}, err
	}

	access, err := crypto.NewAccessToken(user.ID.String(), s.jwt)
	if err != nil {
		return AuthResult{}, serr.ErrInternal
	}

	return AuthResult{AccessToken: access, User: user}, nil
}

// Login аутентифицирует пользователя и выдаёт свежий токен.
//
// Поведение:
//   - не раскрывает факт существования email: неизвестный email и
//     неверный пароль дают одну и ту же ошибку
//   - ранее выданные токены не отзываются (их никто не хранит)
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return AuthResult{}, serr.ErrInvalidInput
	}
	// получаем юзера по email
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			return AuthResult{}, serr.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	// проверяем пароль
	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return AuthResult{}, serr.ErrInternal
	}
	if !ok {
		return AuthResult{}, serr.ErrInvalidCredentials
	}
	// создаём новый access токен
	access, err := crypto.NewAccessToken(user.ID.String(), s.jwt)
	if err != nil {
		return AuthResult{}, serr.ErrInternal
	}

	return AuthResult{AccessToken: access, User: user}, nil
}

// CurrentUser возвращает пользователя по subject уже проверенного токена.
//
// Если пользователя больше нет (токен пережил запись) — ErrUnauthorized.
func (s *AuthService) CurrentUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return models.User{}, serr.ErrUnauthorized
		}
		return models.User{}, err
	}
	return user, nil
}
