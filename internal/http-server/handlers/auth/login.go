// Package auth содержит HTTP-обработчик входа пользователей портала.
package auth

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
	authservice "github.com/ccastillovega/inventario-portal/internal/services/auth"
)

// LoginService описывает сервис входа.
type LoginService interface {
	Login(ctx context.Context, email, rawPassword string) (token string, user *models.User, err error)
}

// NewLogin возвращает обработчик входа: проверяет учётные данные
// и отдаёт JWT вместе с ролью пользователя.
func NewLogin(log *slog.Logger, service LoginService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.NewLogin"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req models.DummyLogin
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

		token, user, err := service.Login(r.Context(), req.Email, req.Password)
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			log.Error("invalid credentials", slog.String("email", req.Email))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))

			return
		}
		if err != nil {
			log.Error("login failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("login failed"))

			return
		}

		log.Info("user logged in", slog.Int("id", user.ID), slog.String("role", user.Role))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"token": token,
			"user": map[string]any{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
		}))
	}
}
