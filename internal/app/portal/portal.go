// Package portal собирает приложение: хранилище каталога, кеш индикаторов,
// сервисы и HTTP-сервер с маршрутами.
package portal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/ccastillovega/inventario-portal/internal/config"
	"github.com/ccastillovega/inventario-portal/internal/indicators"
	"github.com/ccastillovega/inventario-portal/internal/lib/sl"
	authservice "github.com/ccastillovega/inventario-portal/internal/services/auth"
	checkoutservice "github.com/ccastillovega/inventario-portal/internal/services/checkout"
	"github.com/ccastillovega/inventario-portal/internal/storage/catalog"
	"github.com/ccastillovega/inventario-portal/internal/storage/kv"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	redis  *kv.Redis
}

// New собирает приложение. Недоступный redis не фатален: портал
// стартует на хранилище в памяти и логирует деградацию.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var store kv.Store
	redisStore, err := kv.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		logger.Error("redis unavailable, falling back to in-memory store", sl.Err(err))
		store = kv.NewMemory()
		redisStore = nil
	} else {
		store = redisStore
	}

	db := catalog.New(ctx, store, logger)

	indicatorClient := indicators.NewClient(cfg.SourceURL, cfg.RequestTimeout)
	indicatorService := indicators.NewService(indicatorClient, cfg.CacheTTL, logger)

	tokenMaker := authservice.NewTokenMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	loginService := authservice.NewService(db, tokenMaker)
	checkoutService := checkoutservice.NewService(db, indicatorService, cfg.ProcessingDelay, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.Env, db, indicatorService, loginService, checkoutService, tokenMaker)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		redis:  redisStore,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.redis != nil {
			if closeErr := a.redis.Close(); closeErr != nil {
				a.logger.Error("failed to close redis connection", sl.Err(closeErr))
			}
		}
		return err
	}
}
