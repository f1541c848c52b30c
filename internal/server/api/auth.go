// HTTP-хендлеры регистрации, логина и текущего пользователя
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

// RegisterRequest описывает тело запроса регистрации пользователя.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest описывает тело запроса входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse — пользователь в ответах API. Хэш пароля наружу не отдаётся.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse — успешный ответ регистрации и логина:
// bearer-токен (7 дней жизни) и пользователь, на которого он выписан.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

func toUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Register обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 200 OK: регистрация успешна, сразу выдан токен;
//   - 400 Bad Request: неверный JSON или email уже занят;
//   - 422 Unprocessable Entity: невалидные входные данные;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Register user
// @Description  Creates a new user and returns a bearer token for it.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Register request"
// @Success      200 {object} TokenResponse
// @Failure      400 {object} ErrorResponse "Bad JSON or email already registered"
// @Failure      422 {object} ErrorResponse "Invalid input"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	res, err := h.Svc.Auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusUnprocessableEntity, err)
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusBadRequest, err)
		default:
			h.Log.Logger.Sugar().Errorw("register failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
		User:        toUserResponse(res.User),
	})
}

// Login обрабатывает вход пользователя и выдачу токена.
//
// Неизвестный email и неверный пароль дают один и тот же ответ,
// чтобы по нему нельзя было перебирать зарегистрированные адреса.
//
// Ответы:
//   - 200 OK: успешный вход;
//   - 400 Bad Request: неверный JSON или неверные учётные данные;
//   - 422 Unprocessable Entity: пустые поля;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Login
// @Description  Authenticates a user and returns a fresh bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} TokenResponse
// @Failure      400 {object} ErrorResponse "Bad JSON or invalid credentials"
// @Failure      422 {object} ErrorResponse "Invalid input"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	res, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusUnprocessableEntity, err)
		case errors.Is(err, serr.ErrInvalidCredentials):
			WriteError(w, http.StatusBadRequest, err)
		default:
			h.Log.Logger.Sugar().Errorw("login failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
		User:        toUserResponse(res.User),
	})
}

// Me возвращает текущего аутентифицированного пользователя.
//
// Требует JWT-аутентификацию.
//
// @Summary      Current user
// @Description  Returns the user the presented bearer token was issued for.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} UserResponse
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	user, err := h.Svc.Auth.CurrentUser(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrUnauthorized):
			WriteError(w, http.StatusUnauthorized, err)
		default:
			h.Log.Logger.Sugar().Errorw("me failed", "error", err, "user_id", userID.String())
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, toUserResponse(user))
}
