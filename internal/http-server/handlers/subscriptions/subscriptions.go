// Package subscriptions содержит HTTP-обработчики назначения плана
// пользователю и чтения его текущего плана.
package subscriptions

import (
	"context"
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
)

// Catalog описывает операции каталога подписок, нужные обработчикам.
type Catalog interface {
	AssignPlanToUser(ctx context.Context, userID, planID int) bool
	UserPlan(ctx context.Context, userID int) *models.Plan
	ListSubscriptions(ctx context.Context) []models.Subscription
}

// NewAssign возвращает обработчик назначения плана пользователю.
func NewAssign(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.subscriptions.NewAssign"

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

		var req models.DummyAssignPlan
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

		if !store.AssignPlanToUser(r.Context(), userID, req.PlanID) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))

			return
		}
		log.Info("assigned plan", slog.Int("user_id", userID), slog.Int("plan_id", req.PlanID))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{"assigned": true}))
	}
}

// NewUserPlan возвращает обработчик чтения текущего плана пользователя.
// Если план не назначен, в данных ответа возвращается null.
func NewUserPlan(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.subscriptions.NewUserPlan"

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

		render.JSON(w, r, response.StatusOKWithData(store.UserPlan(r.Context(), userID)))
	}
}

// NewList возвращает обработчик списка всех подписок (для админских экранов).
func NewList(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.StatusOKWithData(store.ListSubscriptions(r.Context())))
	}
}
