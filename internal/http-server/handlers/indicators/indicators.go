// Package indicators содержит HTTP-обработчики экономических индикаторов
// и пересчёта цен в песо.
package indicators

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ccastillovega/inventario-portal/internal/http-server/response"
	indicatorservice "github.com/ccastillovega/inventario-portal/internal/indicators"
	"github.com/ccastillovega/inventario-portal/internal/lib/sl"
)

// Provider описывает кеш индикаторов.
type Provider interface {
	Indicators(ctx context.Context) indicatorservice.Values
	ConvertUFToCLP(ctx context.Context, amount float64) int64
	ConvertUSDToCLP(ctx context.Context, amount float64) int64
}

// New возвращает обработчик текущих значений индикаторов.
func New(log *slog.Logger, provider Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values := provider.Indicators(r.Context())
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"uf":        values.UF,
			"usd":       values.USD,
			"fetchedAt": values.FetchedAt,
		}))
	}
}

// NewConvert возвращает обработчик пересчёта суммы в песо.
// Параметры запроса: amount — сумма, unit — uf или usd.
func NewConvert(log *slog.Logger, provider Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.indicators.NewConvert"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
		if err != nil || amount < 0 {
			log.Error("invalid amount", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid amount"))

			return
		}

		var clp int64
		unit := r.URL.Query().Get("unit")
		switch unit {
		case "uf":
			clp = provider.ConvertUFToCLP(r.Context(), amount)
		case "usd":
			clp = provider.ConvertUSDToCLP(r.Context(), amount)
		default:
			log.Error("invalid unit", slog.String("unit", unit))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("unit must be uf or usd"))

			return
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"clp":       clp,
			"formatted": indicatorservice.FormatCLP(clp),
		}))
	}
}
