// Package session управляет серверными сессиями, создаваемыми при входе.
//
// Сессия — явная запись в redis с ключом session:<jti> и временем жизни,
// равным TTL токена. Клиент получает подписанный JWT; middleware принимает
// токен, только если парная запись сессии всё ещё существует. Удаление
// записи (logout или истечение TTL) делает токен недействительным до
// истечения его собственного срока.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	jwtlib "github.com/oforha-ai/account-service/internal/lib/jwt"
)

// ErrSessionNotFound — сессия не существует или истекла.
var ErrSessionNotFound = errors.New("session not found or expired")

// Record — серверные данные одной сессии.
type Record struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Store описывает контракт хранилища сессий. Реализуется cache.Cache.
type Store interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service создаёт, проверяет и уничтожает сессии.
type Service struct {
	store    Store
	jwtMaker jwtlib.Maker
	ttl      time.Duration
}

// New создает новый экземпляр Service.
func New(store Store, jwtMaker jwtlib.Maker, ttl time.Duration) *Service {
	return &Service{
		store:    store,
		jwtMaker: jwtMaker,
		ttl:      ttl,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Create заводит новую сессию для username и возвращает подписанный токен.
func (s *Service) Create(ctx context.Context, username string) (string, error) {
	const op = "session.Create"

	sessionID := uuid.NewString()
	token, err := s.jwtMaker.GenerateToken(username, sessionID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	record := Record{
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Set(ctx, sessionKey(sessionID), record, s.ttl); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Validate проверяет токен и наличие серверной записи сессии,
// возвращает username владельца.
func (s *Service) Validate(ctx context.Context, token string) (string, error) {
	const op = "session.Validate"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var record Record
	found, err := s.store.Get(ctx, sessionKey(claims.ID), &record)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !found || record.Username != claims.Username {
		return "", fmt.Errorf("%s: %w", op, ErrSessionNotFound)
	}
	return record.Username, nil
}

// Destroy уничтожает сессию, стоящую за токеном (logout).
func (s *Service) Destroy(ctx context.Context, token string) error {
	const op = "session.Destroy"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.store.Invalidate(ctx, sessionKey(claims.ID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
