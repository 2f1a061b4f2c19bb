// Package welcome реализует HTTP-обработчик приветственной страницы,
// доступной только аутентифицированным пользователям.
package welcome

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/oforha-ai/account-service/internal/http/middlewarectx"
	"github.com/oforha-ai/account-service/internal/http/response"
)

// Handler обрабатывает HTTP-запросы приветственной страницы.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid or expired session"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"username": username,
		"message":  fmt.Sprintf("welcome, %s", username),
	}))
}
