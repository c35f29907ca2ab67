// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TagColor represents the display color of a tag.
type TagColor string

const (
	TagColorPrimary   TagColor = "primary"
	TagColorSecondary TagColor = "secondary"
	TagColorSuccess   TagColor = "success"
	TagColorDanger    TagColor = "danger"
	TagColorWarning   TagColor = "warning"
	TagColorInfo      TagColor = "info"
	TagColorDark      TagColor = "dark"
	TagColorLight     TagColor = "light"
)

// DefaultTagColor is applied when no color is selected.
const DefaultTagColor = TagColorSecondary

// Tag represents a free-form label a user can attach to transactions.
type Tag struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     TagColor
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTag creates a new Tag entity.
func NewTag(userID uuid.UUID, name string, color TagColor) *Tag {
	now := time.Now().UTC()

	return &Tag{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TransactionTag is the association between a transaction and a tag.
// It records who attached the tag and when. The (transaction, tag) pair
// is unique.
type TransactionTag struct {
	TransactionID uuid.UUID
	TagID         uuid.UUID
	AddedByID     uuid.UUID
	CreatedAt     time.Time
}
