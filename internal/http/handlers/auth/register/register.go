// Package register реализует HTTP-обработчик регистрации пользователей.
//
// В нём определяется структура Request для входных данных, выполняется декодирование JSON,
// проверка и валидация полей, а также делегирование операции сервису жизненного цикла
// учётной записи. При успехе создаётся запись в статусе inactive и отправляется
// письмо со ссылкой активации.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/oforha-ai/account-service/internal/http/response"
	"github.com/oforha-ai/account-service/internal/lib/sl"
	"github.com/oforha-ai/account-service/internal/services/auth"
)

// Request — входные данные для регистрации
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, email, rawPassword string) (string, error)
}

// Handler обрабатывает HTTP-запросы на регистрацию.
type Handler struct {
	log         *slog.Logger
	authService Service
	validate    *validator.Validate
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, authService Service) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
		validate:    validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает учётную запись в статусе inactive и отправляет письмо со ссылкой активации.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} map[string]any "Учётная запись создана, активация ожидается"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Имя пользователя или email уже заняты"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Письмо активации не отправлено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	_, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		switch {
		case errors.Is(err, auth.ErrInvalidUsername):
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("username must not be empty"))
		case errors.Is(err, auth.ErrInvalidEmail):
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid email address"))
		case errors.Is(err, auth.ErrDuplicateIdentity):
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("username or email already taken, choose another"))
		case errors.Is(err, auth.ErrNotificationFailed):
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("unable to send activation email, try again later"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("unable to register at this time, try again later"))
		}
		return
	}

	log.Info("user registered, activation pending", slog.String("username", req.Username))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"username": req.Username,
		"message":  "registration successful, check your email to activate your account",
	}))
}
