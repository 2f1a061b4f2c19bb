package accountservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/oforha-ai/account-service/internal/cache"
	"github.com/oforha-ai/account-service/internal/config"
	jwtlib "github.com/oforha-ai/account-service/internal/lib/jwt"
	"github.com/oforha-ai/account-service/internal/lib/smtp"
	"github.com/oforha-ai/account-service/internal/migrations"
	authservice "github.com/oforha-ai/account-service/internal/services/auth"
	senderservice "github.com/oforha-ai/account-service/internal/services/sender"
	sessionservice "github.com/oforha-ai/account-service/internal/services/session"
	"github.com/oforha-ai/account-service/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString, cfg.StoragePool)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(logger, transport)

	authService := authservice.NewAuthService(db, senderService, cfg.ActivationBaseURL, logger)

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.SessionTTL)
	sessionService := sessionservice.New(cacheRedis, jwtMaker, cfg.SessionTTL)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, authService, sessionService)

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
		db:     db,
		cache:  cacheRedis,
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
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
