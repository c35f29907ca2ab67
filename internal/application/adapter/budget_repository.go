// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fin-mate/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByUserAndPeriod retrieves all budgets for the user in the given
	// month (period is the first day of the month), with categories,
	// ordered by category name.
	FindByUserAndPeriod(ctx context.Context, userID uuid.UUID, period time.Time) ([]*entity.BudgetWithCategory, error)

	// FindCategoryIDsByUserAndPeriod returns the category IDs that already
	// have a budget for the user in the given month.
	FindCategoryIDsByUserAndPeriod(ctx context.Context, userID uuid.UUID, period time.Time) ([]uuid.UUID, error)

	// ExistsByUserCategoryPeriod checks if a budget already exists for the
	// (user, category, period) triple.
	ExistsByUserCategoryPeriod(ctx context.Context, userID, categoryID uuid.UUID, period time.Time) (bool, error)

	// BulkCreate inserts budgets in a single statement, silently skipping
	// rows that would violate the (user, category, period) unique
	// constraint. It returns the number of rows actually created.
	BulkCreate(ctx context.Context, budgets []*entity.Budget) (int64, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete removes a budget from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
