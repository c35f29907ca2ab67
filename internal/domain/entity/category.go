// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryNames are seeded for every newly registered user.
var DefaultCategoryNames = []string{
	"Food",
	"Transport",
	"Salary",
	"Entertainment",
	"Health",
	"Clothing",
	"Investment",
	"Donations",
	"Insurance",
	"Home & Renovation",
	"Digital Goods",
	"Utilities",
	"Beauty",
	"Sport",
}

// Category represents a transaction category owned by a user.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(userID uuid.UUID, name string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
