// Package activate реализует HTTP-обработчик погашения кода активации
// из письма. Код приходит параметром запроса code; неизвестный и уже
// использованный коды наружу не различаются.
package activate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/oforha-ai/account-service/internal/http/response"
	"github.com/oforha-ai/account-service/internal/lib/sl"
	"github.com/oforha-ai/account-service/internal/services/auth"
)

// Service описывает интерфейс бизнес-логики активации.
type Service interface {
	Activate(ctx context.Context, token string) error
}

// Handler обрабатывает HTTP-запросы на активацию учётной записи.
type Handler struct {
	log         *slog.Logger
	authService Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService Service) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
	}
}

// ServeHTTP godoc
// @Summary Активация учётной записи
// @Description Погашает одноразовый код активации из письма и переводит учётную запись в статус active.
// @Tags Auth
// @Produce  json
// @Param code query string true "Код активации из письма"
// @Success 200 {object} map[string]any "Учётная запись активирована"
// @Failure 400 {object} response.ErrorResponse "Код неизвестен или уже использован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /activate [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.activate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	code := r.URL.Query().Get("code")

	if err := h.authService.Activate(r.Context(), code); err != nil {
		log.Error("activation failed", sl.Err(err))
		if errors.Is(err, auth.ErrInvalidOrAlreadyActivated) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid activation code or account already activated"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("unable to activate your account, try again later"))
		return
	}

	log.Info("account activated")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "your account has been activated, you can now log in",
	}))
}
