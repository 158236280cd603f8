// Package portal предоставляет маршруты для основного приложения.
package portal

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	authhandler "github.com/ccastillovega/inventario-portal/internal/http-server/handlers/auth"
	checkouthandler "github.com/ccastillovega/inventario-portal/internal/http-server/handlers/checkout"
	"github.com/ccastillovega/inventario-portal/internal/http-server/handlers/health"
	indicatorshandler "github.com/ccastillovega/inventario-portal/internal/http-server/handlers/indicators"
	"github.com/ccastillovega/inventario-portal/internal/http-server/handlers/invoices"
	"github.com/ccastillovega/inventario-portal/internal/http-server/handlers/plans"
	"github.com/ccastillovega/inventario-portal/internal/http-server/handlers/subscriptions"
	"github.com/ccastillovega/inventario-portal/internal/http-server/handlers/users"
	"github.com/ccastillovega/inventario-portal/internal/http-server/mware"
	"github.com/ccastillovega/inventario-portal/internal/indicators"
	"github.com/ccastillovega/inventario-portal/internal/metrics"
	authservice "github.com/ccastillovega/inventario-portal/internal/services/auth"
	checkoutservice "github.com/ccastillovega/inventario-portal/internal/services/checkout"
	"github.com/ccastillovega/inventario-portal/internal/storage/catalog"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, env string,
	db *catalog.Store, indicatorService *indicators.Service,
	loginService *authservice.Service, checkoutService *checkoutservice.Service,
	tokenMaker authservice.TokenMaker) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		mware.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", authhandler.NewLogin(logger, loginService))
		r.Get("/plans", plans.NewList(logger, db))
		r.Get("/plans/{id}/limits", plans.NewLimits(logger, db))
		r.Get("/indicators", indicatorshandler.New(logger, indicatorService))
		r.Get("/indicators/convert", indicatorshandler.NewConvert(logger, indicatorService))

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(mware.JWTMiddleware(tokenMaker, logger))
			r.Use(mware.RateLimitMiddleware(logger))
			r.Post("/checkout", checkouthandler.New(logger, checkoutService))
			r.Get("/users/{id}/plan", subscriptions.NewUserPlan(logger, db))
			r.Get("/users/{id}/invoices", invoices.NewListForUser(logger, db))
			r.Get("/invoices/{id}", invoices.NewByID(logger, db))
			r.Get("/invoices/number/{number}", invoices.NewByNumber(logger, db))

			// Административная группа
			r.Group(func(r chi.Router) {
				r.Use(mware.RequireAdmin(logger))
				r.Post("/plans", plans.NewCreate(logger, db))
				r.Put("/plans/{id}", plans.NewUpdate(logger, db))
				r.Delete("/plans/{id}", plans.NewDelete(logger, db))
				r.Get("/users", users.NewList(logger, db))
				r.Post("/users", users.NewCreate(logger, db))
				r.Put("/users/{id}", users.NewUpdate(logger, db))
				r.Delete("/users/{id}", users.NewDelete(logger, db))
				r.Post("/users/{id}/reset-password", users.NewResetPassword(logger, db))
				r.Post("/users/{id}/plan", subscriptions.NewAssign(logger, db))
				r.Get("/subscriptions", subscriptions.NewList(logger, db))
			})
		})
	})

	r.Method("GET", "/health", health.New(logger, env))
	r.Handle("/metrics", metrics.Handler())
}
