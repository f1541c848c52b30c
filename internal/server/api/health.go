// Health-check для деплоя
package api

import (
	"net/http"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

// HealthResponse — ответ health-эндпоинта.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health проверяет доступность базы данных.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      500 {object} ErrorResponse "Database unreachable"
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	db := config.GetDB()
	if db == nil || db.PingContext(r.Context()) != nil {
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}
	WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
