// Package checkout содержит HTTP-обработчик оформления покупки плана.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/ccastillovega/inventario-portal/internal/http-server/response"
	"github.com/ccastillovega/inventario-portal/internal/lib/sl"
	"github.com/ccastillovega/inventario-portal/internal/models"
	checkoutservice "github.com/ccastillovega/inventario-portal/internal/services/checkout"
)

// Processor описывает сервис оформления покупки.
type Processor interface {
	Process(ctx context.Context, req models.DummyCheckout) (*checkoutservice.Result, error)
}

// New возвращает обработчик оформления покупки.
func New(log *slog.Logger, processor Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.checkout.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req models.DummyCheckout
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		result, err := processor.Process(r.Context(), req)
		switch {
		case errors.Is(err, checkoutservice.ErrUserNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))

			return
		case errors.Is(err, checkoutservice.ErrPlanNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("plan not found"))

			return
		case err != nil:
			log.Error("checkout failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("checkout failed"))

			return
		}

		log.Info("checkout completed",
			slog.String("transaction_id", result.TransactionID),
			slog.String("invoice", result.Invoice.InvoiceNumber))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(result))
	}
}
