package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/models"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/service"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

// testConfig — минимальный валидный конфиг для сервисных тестов.
// Хэшер bcrypt с минимальной стоимостью, чтобы тесты были быстрыми.
func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:    "fintrack",
			Audience:  "fintrack-api",
			AccessTTL: 7 * 24 * time.Hour,
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "test-signing-key-0123456789-abcdef",
			},
		},
		Password: config.PasswordConfig{
			Hasher: "bcrypt",
			Bcrypt: config.BcryptConfig{Cost: 4},
		},
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUsersRepo(ctrl)
	auth := service.NewAuthService(users, testConfig())

	userID := uuid.New()

	users.EXPECT().GetByEmail(gomock.Any(), "user@example.com").
		Return(models.User{}, serr.ErrNotFound)
	users.EXPECT().Create(gomock.Any(), "user@example.com", gomock.Any()).
		DoAndReturn(func(_ context.Context, email, hash string) (models.User, error) {
			// в базу уходит хэш, а не исходный пароль
			if hash == "pw1" {
				t.Fatalf("password stored in plain text")
			}
			return models.User{ID: userID, Email: email, PasswordHash: hash, CreatedAt: time.Now().UTC()}, nil
		})

	res, err := auth.Register(context.Background(), "user@example.com", "pw1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.AccessToken == "" {
		t.Fatalf("expected non-empty access token")
	}
	if res.User.ID != userID || res.User.Email != "user@example.com" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUsersRepo(ctrl)
	auth := service.NewAuthService(users, testConfig())

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"пустой email", "", "pw1"},
		{"пустой пароль", "user@example.com", ""},
		{"email без @", "userexample.com", "pw1"},
		{"email без домена", "user@", "pw1"},
		{"email с пробелом", "us er@example.com", "pw1"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := auth.Register(context.Background(), c.email, c.password)
			if !errors.Is(err, serr.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUsersRepo(ctrl)
	auth := service.NewAuthService(users, testConfig())

	users.EXPECT().GetByEmail(gomock.Any(), "user@example.com").
		Return(models.User{ID: uuid.New(), Email: "user@example.com"}, nil)

	_, err := auth.Register(context.Background(), "user@example.com", "pw1")
	if !errors.Is(err, serr.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthService_Register_RaceLostToUniqueIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUsersRepo(ctrl)
	auth := service.NewAuthService(users, testConfig())

	// проверка занятости прошла, но вставка упёрлась в UNIQUE-индекс
	users.EXPECT().GetByEmail(gomock.Any(), "user@example.com").
		Return(models.User{}, serr.ErrNotFound)
	users.EXPECT().Create(gomock.Any(), "user@example.com", gomock.Any()).
		Return(models.User{}, serr.ErrAlreadyExists)

	_, err := auth.Register(context.Background(), "user@example.com", "pw1")
	if !errors.Is(err, serr.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUsersRepo(ctrl)
	auth := service.NewAuthService(users, testConfig())

	hash, err := crypto.BcryptHasher{Cost: 4}.Hash("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	userID := uuid.New()

	users.EXPECT().GetByEmail(gomock.Any(), "user@example.com").
		Return(models.User{ID: userID, Email: "user@example.com", PasswordHash: hash}, nil)

	res, err := auth.Login(context.Background(), "user@example.com", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.AccessToken == "" {
		t.Fatalf("expected non-empty access token")
	}
	if res.User.ID != userID {
		t.Fatalf("unexpected user: %+v", res.User)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUsersRepo(ctrl)
	auth := service.NewAuthService(users, testConfig())

	hash, err := crypto.BcryptHasher{Cost: 4}.Hash("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	users.EXPECT().GetByEmail(gomock.Any(), "user@example.com").
		Return(models.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: hash}, nil)

	_, err = auth.Login(context.Background(), "user@example.com", "wrong")
	if !errors.Is(err, serr.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUsersRepo(ctrl)
	auth := service.NewAuthService(users, testConfig())

	users.EXPECT().GetByEmail(gomock.Any(), "missing@example.com").
		Return(models.User{}, serr.ErrNotFound)

	// неизвестный email неотличим от неверного пароля
	_, err := auth.Login(context.Background(), "missing@example.com", "pw1")
	if !errors.Is(err, serr.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := mocks.NewMockUsersRepo(ctrl)
	auth := service.NewAuthService(users, testConfig())

	userID := uuid.New()

	users.EXPECT().GetByID(gomock.Any(), userID).
		Return(models.User{ID: userID, Email: "user@example.com"}, nil)

	u, err := auth.CurrentUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if u.ID != userID {
		t.Fatalf("unexpected user: %+v", u)
	}

	// пользователь удалён, а токен ещё жив
	users.EXPECT().GetByID(gomock.Any(), userID).
		Return(models.User{}, serr.ErrNotFound)

	_, err = auth.CurrentUser(context.Background(), userID)
	if !errors.Is(err, serr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
