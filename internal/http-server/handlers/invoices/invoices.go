// Package invoices содержит HTTP-обработчики чтения счетов.
// Счета создаются только при оформлении покупки, операций записи здесь нет.
package invoices

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ccastillovega/inventario-portal/internal/http-server/response"
	"github.com/ccastillovega/inventario-portal/internal/lib/folio"
	"github.com/ccastillovega/inventario-portal/internal/lib/sl"
	"github.com/ccastillovega/inventario-portal/internal/models"
)

// Catalog описывает операции чтения счетов.
type Catalog interface {
	InvoicesForUser(ctx context.Context, userID int) []models.Invoice
	InvoiceByNumber(ctx context.Context, number string) *models.Invoice
	InvoiceByID(ctx context.Context, id int) *models.Invoice
}

// NewListForUser возвращает обработчик списка счетов пользователя,
// от самого свежего к самому старому.
func NewListForUser(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.invoices.NewListForUser"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid user id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid user id"))

			return
		}

		render.JSON(w, r, response.StatusOKWithData(store.InvoicesForUser(r.Context(), userID)))
	}
}

// NewByNumber возвращает обработчик поиска счёта по фолио.
func NewByNumber(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.invoices.NewByNumber"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		number := chi.URLParam(r, "number")
		if !folio.Valid(number) {
			log.Error("invalid invoice number", slog.String("number", number))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid invoice number"))

			return
		}

		invoice := store.InvoiceByNumber(r.Context(), number)
		if invoice == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("invoice not found"))

			return
		}
		render.JSON(w, r, response.StatusOKWithData(invoice))
	}
}

// NewByID возвращает обработчик поиска счёта по id.
func NewByID(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.invoices.NewByID"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid invoice id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid invoice id"))

			return
		}

		invoice := store.InvoiceByID(r.Context(), id)
		if invoice == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("invoice not found"))

			return
		}
		render.JSON(w, r, response.StatusOKWithData(invoice))
	}
}
