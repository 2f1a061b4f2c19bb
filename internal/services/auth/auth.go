// Package auth содержит бизнес-логику жизненного цикла учётной записи:
// регистрацию с выдачей кода активации, активацию по ссылке из письма
// и вход по имени пользователя и паролю.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/oforha-ai/account-service/internal/lib/password"
	"github.com/oforha-ai/account-service/internal/lib/sl"
	"github.com/oforha-ai/account-service/internal/lib/token"
	"github.com/oforha-ai/account-service/internal/models"
	"github.com/oforha-ai/account-service/internal/storage/repository"
)

// Ошибки жизненного цикла учётной записи.
var (
	// ErrInvalidUsername — имя пользователя пустое после обрезки пробелов.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrInvalidEmail — адрес не проходит синтаксическую проверку.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrDuplicateIdentity — username или email уже заняты.
	ErrDuplicateIdentity = errors.New("username or email already taken")
	// ErrNotificationFailed — письмо активации отправить не удалось.
	// Созданная запись пользователя при этом не откатывается.
	ErrNotificationFailed = errors.New("unable to send activation email")
	// ErrInvalidOrAlreadyActivated — код активации неизвестен или уже погашен.
	// Эти два случая намеренно не различаются наружу.
	ErrInvalidOrAlreadyActivated = errors.New("invalid activation code or account already activated")
	// ErrUserNotFound — пользователь с таким именем не зарегистрирован.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword — пароль не совпадает с сохранённым хэшем.
	ErrInvalidPassword = errors.New("invalid password")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// ActivateByToken атомарно переводит запись inactive -> active по коду активации.
	ActivateByToken(ctx context.Context, token string) error
}

// Notifier описывает контракт доставки письма со ссылкой активации.
type Notifier interface {
	SendActivationEmail(email, username, activationLink string) error
}

// AuthService отвечает за регистрацию, активацию и вход пользователей.
type AuthService struct {
	users             UserRepository
	notifier          Notifier
	activationBaseURL string
	log               *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
// activationBaseURL — адрес конечной точки активации, к которому
// добавляется параметр code.
func NewAuthService(users UserRepository, notifier Notifier, activationBaseURL string, log *slog.Logger) *AuthService {
	return &AuthService{
		users:             users,
		notifier:          notifier,
		activationBaseURL: activationBaseURL,
		log:               log,
	}
}

// Register создает нового пользователя в статусе inactive, выдаёт ему
// одноразовый код активации и отправляет письмо со ссылкой.
//
// Если письмо отправить не удалось, созданная запись остаётся в базе,
// а вызывающая сторона получает ErrNotificationFailed вместо успеха.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string) (string, error) {
	const op = "auth.Register"

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	// Валидация на HTTP-слое считает пробелы символами, поэтому имя
	// из одних пробелов проверяется здесь, уже после обрезки.
	if username == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidUsername)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	activationToken, err := token.NewActivation()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Username:        username,
		Email:           email,
		PasswordHash:    hashed,
		Status:          models.StatusInactive,
		ActivationToken: &activationToken,
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateIdentity) {
			return "", fmt.Errorf("%s: %w", op, ErrDuplicateIdentity)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	activationLink := fmt.Sprintf("%s?code=%s", s.activationBaseURL, activationToken)
	if err := s.notifier.SendActivationEmail(email, username, activationLink); err != nil {
		// Пользователь уже создан и сможет запросить активацию позже,
		// запись не откатываем.
		s.log.Error("activation email was not sent", slog.String("op", op), sl.Err(err))
		return uid, fmt.Errorf("%s: %w", op, ErrNotificationFailed)
	}

	return uid, nil
}

// Activate погашает код активации и переводит учётную запись в статус active.
// Код одноразовый: повторный вызов с тем же кодом вернёт
// ErrInvalidOrAlreadyActivated.
func (s *AuthService) Activate(ctx context.Context, activationToken string) error {
	const op = "auth.Activate"

	activationToken = strings.TrimSpace(activationToken)
	if activationToken == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidOrAlreadyActivated)
	}

	if err := s.users.ActivateByToken(ctx, activationToken); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return fmt.Errorf("%s: %w", op, ErrInvalidOrAlreadyActivated)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Login проверяет пароль пользователя и возвращает его учётную запись.
// Статус учётной записи при входе не проверяется: неактивированный
// пользователь тоже может войти.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*models.User, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidPassword)
	}
	return user, nil
}
