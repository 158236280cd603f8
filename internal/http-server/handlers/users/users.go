// Package users содержит HTTP-обработчики CRUD по пользователям портала.
// Хэш пароля наружу не отдаётся: записи каталога переводятся в userView.
package users

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/ccastillovega/inventario-portal/internal/http-server/response"
	"github.com/ccastillovega/inventario-portal/internal/lib/sl"
	"github.com/ccastillovega/inventario-portal/internal/models"
)

// Catalog описывает операции каталога пользователей, нужные обработчикам.
type Catalog interface {
	CreateUser(ctx context.Context, req models.DummyUser) (models.User, error)
	ListUsers(ctx context.Context) []models.User
	UpdateUser(ctx context.Context, id int, req models.DummyUserUpdate) *models.User
	DeleteUser(ctx context.Context, id int) bool
	ResetPassword(ctx context.Context, id int, newPassword string) (bool, error)
}

// userView — представление пользователя без хэша пароля.
type userView struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	PlanID         *int       `json:"planId"`
	TrialActive    bool       `json:"trialActive,omitempty"`
	TrialStartDate *time.Time `json:"trialStartDate,omitempty"`
	TrialEndDate   *time.Time `json:"trialEndDate,omitempty"`
}

func toView(user models.User) userView {
	return userView{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		PlanID:         user.PlanID,
		TrialActive:    user.TrialActive,
		TrialStartDate: user.TrialStartDate,
		TrialEndDate:   user.TrialEndDate,
	}
}

// NewList возвращает обработчик списка пользователей.
func NewList(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users := store.ListUsers(r.Context())
		views := make([]userView, 0, len(users))
		for _, user := range users {
			views = append(views, toView(user))
		}
		render.JSON(w, r, response.StatusOKWithData(views))
	}
}

// NewCreate возвращает обработчик создания пользователя.
func NewCreate(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.NewCreate"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req models.DummyUser
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

		user, err := store.CreateUser(r.Context(), req)
		if err != nil {
			log.Error("failed to create user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create user"))

			return
		}
		log.Info("created user", slog.Int("id", user.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(toView(user)))
	}
}

// NewUpdate возвращает обработчик частичного обновления пользователя.
func NewUpdate(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.NewUpdate"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid user id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid user id"))

			return
		}

		var req models.DummyUserUpdate
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

		user := store.UpdateUser(r.Context(), id, req)
		if user == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))

			return
		}
		log.Info("updated user", slog.Int("id", id))
		render.JSON(w, r, response.StatusOKWithData(toView(*user)))
	}
}

// NewDelete возвращает обработчик удаления пользователя.
func NewDelete(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.NewDelete"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid user id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid user id"))

			return
		}

		if !store.DeleteUser(r.Context(), id) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))

			return
		}
		log.Info("deleted user", slog.Int("id", id))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{"deleted": true}))
	}
}

// NewResetPassword возвращает обработчик смены пароля пользователя.
func NewResetPassword(log *slog.Logger, store Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.NewResetPassword"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid user id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid user id"))

			return
		}

		var req models.DummyResetPassword
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

		ok, err := store.ResetPassword(r.Context(), id, req.Password)
		if err != nil {
			log.Error("failed to reset password", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to reset password"))

			return
		}
		if !ok {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))

			return
		}
		log.Info("reset password", slog.Int("id", id))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{"reset": true}))
	}
}
