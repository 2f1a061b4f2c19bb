// Package middlewarectx содержит HTTP middleware для проверки сессионных токенов.
//
// SessionMiddleware проверяет наличие и валидность токена в заголовке Authorization,
// сверяет его с серверной записью сессии и в случае успеха добавляет в контекст
// имя пользователя и сам токен для дальнейшего использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/oforha-ai/account-service/internal/http/response"
	"github.com/oforha-ai/account-service/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для имени пользователя в контексте
	User Key = "username"
	// SessionToken — ключ для сессионного токена в контексте
	SessionToken Key = "session_token"
)

// SessionValidator описывает интерфейс сервиса для проверки сессионного токена.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (string, error)
}

// SessionMiddleware возвращает HTTP middleware, который проверяет сессионный
// токен в заголовке Authorization.
//
// Если токен валиден и сессия существует, добавляет имя пользователя и токен
// в контекст запроса, иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func SessionMiddleware(sessions SessionValidator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			username, err := sessions.Validate(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired session", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired session"))
				return
			}
			ctx := context.WithValue(r.Context(), User, username)
			ctx = context.WithValue(ctx, SessionToken, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
