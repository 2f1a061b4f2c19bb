// Package login реализует HTTP-обработчик для запросов аутентификации пользователей.
//
// В нём определяется структура Request для входных данных, выполняется декодирование JSON,
// проверка и валидация полей, а также делегирование операции входа сервису жизненного
// цикла учётной записи. При успешной аутентификации создаётся серверная сессия
// и возвращается JSON с сессионным токеном; в случае ошибок формируются
// соответствующие HTTP-ответы.
package login

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
	"github.com/oforha-ai/account-service/internal/models"
	"github.com/oforha-ai/account-service/internal/services/auth"
)

// Request — структура входных данных для авторизации.
//
// Username должен быть строкой длиной от 3 до 50 символов, пароль — минимум 6 символов.
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, rawPassword string) (*models.User, error)
}

// SessionCreator описывает интерфейс создания серверной сессии после входа.
type SessionCreator interface {
	Create(ctx context.Context, username string) (string, error)
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log         *slog.Logger
	authService Service
	sessions    SessionCreator
	validate    *validator.Validate
}

// New создает новый экземпляр Handler с указанными логгером, сервисом
// аутентификации и сервисом сессий.
func New(log *slog.Logger, authService Service, sessions SessionCreator) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
		sessions:    sessions,
		validate:    validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по имени и паролю. Создаёт серверную сессию и возвращает сессионный токен.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} map[string]any "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 401 {object} response.ErrorResponse "Неверный пароль"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Error("login failed", sl.Err(err))
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, auth.ErrInvalidPassword):
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid password"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("unable to log in at this time, try again later"))
		}
		return
	}

	token, err := h.sessions.Create(r.Context(), user.Username)
	if err != nil {
		log.Error("failed to create session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("unable to log in at this time, try again later"))
		return
	}

	log.Info("login success", slog.String("username", user.Username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token":    token,
		"username": user.Username,
	}))
}
