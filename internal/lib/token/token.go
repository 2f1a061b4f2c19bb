// Package token генерирует одноразовые коды активации учётной записи.
//
// Код — 16 криптографически случайных байт в hex-представлении (128 бит энтропии).
// Он вкладывается в ссылку активации и действителен до первого успешного
// погашения.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// size — количество случайных байт в коде активации.
const size = 16

// NewActivation возвращает новый код активации.
func NewActivation() (string, error) {
	const op = "token.NewActivation"
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(buf), nil
}
