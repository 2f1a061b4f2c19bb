// Package accountservice предоставляет сборку и маршруты основного приложения.
package accountservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/oforha-ai/account-service/internal/http/docs"
	"github.com/oforha-ai/account-service/internal/http/handlers/account/health"
	"github.com/oforha-ai/account-service/internal/http/handlers/account/welcome"
	"github.com/oforha-ai/account-service/internal/http/handlers/auth/activate"
	"github.com/oforha-ai/account-service/internal/http/handlers/auth/login"
	"github.com/oforha-ai/account-service/internal/http/handlers/auth/logout"
	"github.com/oforha-ai/account-service/internal/http/handlers/auth/register"
	"github.com/oforha-ai/account-service/internal/http/middlewarectx"
	authservice "github.com/oforha-ai/account-service/internal/services/auth"
	sessionservice "github.com/oforha-ai/account-service/internal/services/session"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, sessionService *sessionservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Get("/activate", activate.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService, sessionService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с проверкой сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(sessionService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, sessionService).ServeHTTP)
			r.Get("/welcome", welcome.New(logger).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI поверх описания API, которое раздаёт пакет docs
	r.Get("/docs/openapi.json", docs.SpecHandler)
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/openapi.json")))
}
