// Package logout реализует HTTP-обработчик завершения сессии.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/oforha-ai/account-service/internal/http/middlewarectx"
	"github.com/oforha-ai/account-service/internal/http/response"
	"github.com/oforha-ai/account-service/internal/lib/sl"
)

// SessionDestroyer описывает интерфейс уничтожения серверной сессии.
type SessionDestroyer interface {
	Destroy(ctx context.Context, token string) error
}

// Handler обрабатывает HTTP-запросы на выход из системы.
type Handler struct {
	log      *slog.Logger
	sessions SessionDestroyer
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, sessions SessionDestroyer) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
	}
}

// ServeHTTP godoc
// @Summary Выход из системы
// @Description Уничтожает серверную сессию, стоящую за сессионным токеном.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Сессия завершена"
// @Failure 401 {object} response.ErrorResponse "Сессия не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token, ok := r.Context().Value(middlewarectx.SessionToken).(string)
	if !ok || token == "" {
		log.Error("session token missing from context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid or expired session"))
		return
	}

	if err := h.sessions.Destroy(r.Context(), token); err != nil {
		log.Error("failed to destroy session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("unable to log out at this time, try again later"))
		return
	}

	log.Info("session destroyed")
	render.JSON(w, r, response.OK())
}
