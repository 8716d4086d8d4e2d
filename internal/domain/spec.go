package domain

import (
	"time"

	"github.com/google/uuid"
)

// Spec — техническое задание (спецификация бизнес-процесса).
//
// Spec — контейнер для версий. Текущей опубликованной версией
// считается та, на которую указывает CurrentVersionID.
type Spec struct {
	// ID — уникальный идентификатор спецификации.
	ID uuid.UUID `json:"id"`

	// Name — название спецификации.
	Name string `json:"name"`

	// Description — описание назначения.
	Description string `json:"description,omitempty"`

	// OwnerID — ссылка на пользователя-владельца.
	OwnerID *uuid.UUID `json:"owner_id,omitempty"`

	// CurrentVersionID — опубликованная версия (если есть).
	CurrentVersionID *uuid.UUID `json:"current_version_id,omitempty"`

	// CreatedAt — время создания.
	CreatedAt time.Time `json:"created_at"`
}

// VersionStatus — статус версии.
//
// Это плоская метка, а не машина состояний: любой статус можно
// установить из любого другого. Единственный побочный эффект —
// StatusPublished делает версию текущей для спецификации.
type VersionStatus string

// Статусы версий.
const (
	StatusDraft     VersionStatus = "draft"
	StatusInReview  VersionStatus = "in_review"
	StatusApproved  VersionStatus = "approved"
	StatusPublished VersionStatus = "published"
	StatusArchived  VersionStatus = "archived"
)

// IsValid проверяет, что статус известен.
func (s VersionStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusInReview, StatusApproved, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Version — одна ревизия графа спецификации.
//
// Номера версий монотонны в пределах Spec и никогда не переиспользуются.
// Снапшот версии хранится отдельно (таблицы steps/transitions)
// и загружается по требованию.
type Version struct {
	// ID — уникальный идентификатор версии.
	ID uuid.UUID `json:"id"`

	// SpecID — ссылка на родительскую спецификацию.
	SpecID uuid.UUID `json:"spec_id"`

	// Number — порядковый номер версии (1, 2, 3, ...).
	Number int `json:"number"`

	// Status — статус версии.
	Status VersionStatus `json:"status"`

	// BasedOnVersionID — версия, от которой сделан форк (если был).
	BasedOnVersionID *uuid.UUID `json:"based_on_version_id,omitempty"`

	// CreatedAt — время создания версии.
	CreatedAt time.Time `json:"created_at"`
}
