// Package health содержит обработчик проверки живости сервера.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/ccastillovega/inventario-portal/internal/http-server/response"
)

type Handler struct {
	log *slog.Logger
	env string
}

func New(log *slog.Logger, env string) *Handler {
	return &Handler{
		log: log,
		env: env,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
		"env":    h.env,
	}))
}
