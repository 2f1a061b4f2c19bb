// Package repository реализует хранилище данных на основе PostgreSQL
// для управления учётными записями пользователей. Предоставляет методы
// создания, поиска и атомарной активации записей. Уникальность username
// и email обеспечивается ограничениями на уровне базы, а не проверками
// в приложении.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oforha-ai/account-service/internal/config"
)

// Ошибки уровня хранилища, пробрасываемые в бизнес-логику.
var (
	// ErrDuplicateIdentity — username или email уже заняты (unique violation).
	ErrDuplicateIdentity = errors.New("username or email already taken")
	// ErrUserNotFound — пользователь с таким ключом не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrTokenNotFound — нет неактивированной записи с таким кодом активации.
	ErrTokenNotFound = errors.New("activation token not found")
)

// Storage инкапсулирует пул соединений с базой данных PostgreSQL
// и реализует методы работы с пользователями.
type Storage struct {
	DB *sql.DB
}

// New создаёт пул соединений к PostgreSQL с управляемыми лимитами
// и проверяет доступность базы.
func New(storageConnectionString string, pool config.StoragePool) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}
