// Package jwt реализует генерацию и парсинг JWT токенов сессии с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки токенов с username и идентификатором сессии.
// MakerImpl — конкретная реализация с использованием секретного ключа и срока жизни.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов сессии.
//
// Методы позволяют создавать токен с указанием username и идентификатора сессии,
// а также разбирать токен и извлекать из него кастомные данные.
type Maker interface {
	// GenerateToken принимает username и идентификатор сессии (jti)
	GenerateToken(username, sessionID string) (string, error)
	// ParseToken возвращает *SessionClaims с username и идентификатором сессии
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
