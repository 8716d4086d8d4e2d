package domain

import (
	"time"

	"github.com/google/uuid"
)

// User — пользователь системы. Минимальная модель:
// аутентификация и права доступа вне рамок сервиса.
type User struct {
	// ID — уникальный идентификатор пользователя.
	ID uuid.UUID `json:"id"`

	// Name — отображаемое имя.
	Name string `json:"name"`

	// Email — адрес пользователя, уникален.
	Email string `json:"email"`

	// CreatedAt — время регистрации.
	CreatedAt time.Time `json:"created_at"`
}
