// Package models содержит доменную модель пользователя сервиса,
// включающую данные учётной записи, хэш пароля, статус активации
// и одноразовый код активации. Структура используется в бизнес-логике
// и при работе с хранилищем.
package models

import "time"

// Статусы учётной записи. Единственный переход — inactive -> active.
const (
	// StatusInactive — учётная запись создана, e-mail ещё не подтверждён.
	StatusInactive = "inactive"
	// StatusActive — учётная запись активирована по ссылке из письма.
	StatusActive = "active"
)

// User представляет зарегистрированного пользователя сервиса.
type User struct {
	UID             string    // Уникальный идентификатор пользователя
	Username        string    // Имя пользователя (уникальное)
	Email           string    // Электронная почта (уникальная)
	PasswordHash    string    // Хэш пароля пользователя
	Status          string    // Статус учётной записи: inactive или active
	ActivationToken *string   // Код активации; есть только пока статус inactive
	CreatedAt       time.Time // Дата создания учётной записи
}

// IsActive сообщает, активирована ли учётная запись.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
