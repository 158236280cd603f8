// Package plans содержит HTTP-обработчики CRUD по тарифным планам
// и таблицы ограничений плана.
package plans

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/ccastillovega/inventario-portal/internal/http-server/response"
	"github.com/ccastillovega/inventario-portal/internal/lib/sl"
	"github.com/ccastillovega/inventario-portal/internal/models"
	"github.com/ccastillovega/inventario-portal/internal/storage/catalog"
)

// Catalog описывает операции каталога планов, нужные обработчикам.
type Catalog interface {
	CreatePlan(ctx context.Context, req models.DummyPlan) models.Plan
	ListPlans(ctx context.Context) []models.Plan
	UpdatePlan(ctx context.Context, id int, req models.DummyPlanUpdate) *models.Plan
	DeletePlan(ctx context.Context, id int) (bool, error)
	PlanLimits(planID int) *models.PlanLimits
}

// NewList возвращает обработчик списка планов каталога.
func NewList(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.StatusOKWithData(store.ListPlans(r.Context())))
	}
}

// NewCreate возвращает обработчик создания плана.
func NewCreate(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.plans.NewCreate"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req models.DummyPlan
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

		plan := store.CreatePlan(r.Context(), req)
		log.Info("created plan", slog.Int("id", plan.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(plan))
	}
}

// NewUpdate возвращает обработчик частичного обновления плана.
func NewUpdate(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.plans.NewUpdate"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid plan id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid plan id"))

			return
		}

		var req models.DummyPlanUpdate
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

		plan := store.UpdatePlan(r.Context(), id, req)
		if plan == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("plan not found"))

			return
		}
		log.Info("updated plan", slog.Int("id", id))
		render.JSON(w, r, response.StatusOKWithData(plan))
	}
}

// NewDelete возвращает обработчик удаления плана. План, на который ещё
// ссылаются пользователи или подписки, удалить нельзя.
func NewDelete(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.plans.NewDelete"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid plan id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid plan id"))

			return
		}

		removed, err := store.DeletePlan(r.Context(), id)
		if errors.Is(err, catalog.ErrPlanInUse) {
			log.Error("plan is still referenced", slog.Int("id", id))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("plan is referenced by a user or subscription"))

			return
		}
		if !removed {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("plan not found"))

			return
		}
		log.Info("deleted plan", slog.Int("id", id))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{"deleted": true}))
	}
}

// NewLimits возвращает обработчик таблицы ограничений плана.
func NewLimits(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.plans.NewLimits"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid plan id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid plan id"))

			return
		}

		limits := store.PlanLimits(id)
		if limits == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("unknown plan id"))

			return
		}
		render.JSON(w, r, response.StatusOKWithData(limits))
	}
}
