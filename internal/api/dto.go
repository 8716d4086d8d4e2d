package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Flowdoc/internal/domain"
)

// Spec DTOs

// CreateSpecRequest — запрос на создание спецификации.
type CreateSpecRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	OwnerID     *uuid.UUID `json:"owner_id,omitempty"`
}

// UpdateSpecRequest — запрос на обновление спецификации.
type UpdateSpecRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// SpecResponse — ответ со спецификацией.
type SpecResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	OwnerID          *uuid.UUID `json:"owner_id,omitempty"`
	CurrentVersionID *uuid.UUID `json:"current_version_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// SpecFromDomain конвертирует domain.Spec в SpecResponse.
func SpecFromDomain(s domain.Spec) SpecResponse {
	return SpecResponse{
		ID:               s.ID,
		Name:             s.Name,
		Description:      s.Description,
		OwnerID:          s.OwnerID,
		CurrentVersionID: s.CurrentVersionID,
		CreatedAt:        s.CreatedAt,
	}
}

// Version DTOs

// SetStatusRequest — запрос на установку статуса версии.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// VersionResponse — ответ с версией.
type VersionResponse struct {
	ID               uuid.UUID  `json:"id"`
	SpecID           uuid.UUID  `json:"spec_id"`
	Number           int        `json:"number"`
	Status           string     `json:"status"`
	BasedOnVersionID *uuid.UUID `json:"based_on_version_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// VersionFromDomain конвертирует domain.Version в VersionResponse.
func VersionFromDomain(v domain.Version) VersionResponse {
	return VersionResponse{
		ID:               v.ID,
		SpecID:           v.SpecID,
		Number:           v.Number,
		Status:           string(v.Status),
		BasedOnVersionID: v.BasedOnVersionID,
		CreatedAt:        v.CreatedAt,
	}
}

// Graph DTOs
//
// Снапшот ходит по проводу в доменном представлении: шаги и переходы —
// plain-значения без суррогатных id, отдельные DTO не нужны.

// SaveGraphRequest — запрос на полную замену графа версии.
type SaveGraphRequest struct {
	Steps       []domain.Step       `json:"steps"`
	Transitions []domain.Transition `json:"transitions"`
}

// User DTOs

// CreateUserRequest — запрос на создание пользователя.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserResponse — ответ с пользователем.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain конвертирует domain.User в UserResponse.
func UserFromDomain(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
