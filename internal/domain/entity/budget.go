// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a monthly spending limit for a category.
// Period is the first day of the calendar month the budget applies to.
// The (user, category, period) triple is unique.
type Budget struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Limit      decimal.Decimal
	Period     time.Time
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewBudget creates a new Budget entity.
func NewBudget(userID, categoryID uuid.UUID, limit decimal.Decimal, period time.Time, notes string) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		Limit:      limit,
		Period:     period,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// BudgetWithCategory pairs a budget with its category.
type BudgetWithCategory struct {
	Budget   *Budget
	Category *Category
}

// BudgetProgress is a budget together with the amount spent in its period
// and the spent/limit percentage.
type BudgetProgress struct {
	Budget   *Budget
	Category *Category
	Spent    decimal.Decimal
	Progress float64
}
