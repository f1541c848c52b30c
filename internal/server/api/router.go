package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware логирования и CORS для всех запросов;
//   - публичные эндпоинты аутентификации под префиксом /auth;
//   - группу защищённых JWT эндпоинтов /transactions.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(allowedOrigins))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	// health-check для деплоя
	r.Get("/health", h.Health)
	// Публичные пути
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
	// защищённые пути
	r.Group(func(r chi.Router) {
		// проверка access токена
		r.Use(h.Verifier.AuthMiddleware())
		r.Get("/auth/me", h.Me)
		// CRUD и агрегаты транзакций
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", h.CreateTransaction)
			r.Get("/", h.ListTransactions)
			r.Get("/summary", h.Summary)
			r.Get("/stats", h.Stats)
			r.Put("/{id}", h.UpdateTransaction)
			r.Delete("/{id}", h.DeleteTransaction)
		})
	})

	return r
}
