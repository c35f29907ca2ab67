// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/domain/entity"
	"github.com/fin-mate/backend/internal/domain/period"
)

// CopyMonthInput represents the input for copying budgets between months.
type CopyMonthInput struct {
	UserID     uuid.UUID
	TargetDate time.Time
}

// CopyMonthOutput represents the result of a budget copy.
type CopyMonthOutput struct {
	Created int64
	Target  time.Time
	Prev    time.Time
}

// CopyMonthUseCase duplicates the previous month's budgets into the target
// month, skipping categories that already have a budget there. Concurrent
// copies are deduplicated by the unique constraint, not by locking.
type CopyMonthUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewCopyMonthUseCase creates a new CopyMonthUseCase instance.
func NewCopyMonthUseCase(budgetRepo adapter.BudgetRepository) *CopyMonthUseCase {
	return &CopyMonthUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget copy. Calling it twice for the same month is
// safe: the second call creates nothing.
func (uc *CopyMonthUseCase) Execute(ctx context.Context, input CopyMonthInput) (*CopyMonthOutput, error) {
	target := period.FirstDay(input.TargetDate)
	prev := period.PrevMonth(target)

	existingIDs, err := uc.budgetRepo.FindCategoryIDsByUserAndPeriod(ctx, input.UserID, target)
	if err != nil {
		return nil, fmt.Errorf("failed to load target month categories: %w", err)
	}
	existing := make(map[uuid.UUID]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = struct{}{}
	}

	prevBudgets, err := uc.budgetRepo.FindByUserAndPeriod(ctx, input.UserID, prev)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous month budgets: %w", err)
	}

	toCreate := make([]*entity.Budget, 0, len(prevBudgets))
	for _, b := range prevBudgets {
		if _, ok := existing[b.Budget.CategoryID]; ok {
			continue
		}
		toCreate = append(toCreate, entity.NewBudget(
			input.UserID,
			b.Budget.CategoryID,
			b.Budget.Limit,
			target,
			b.Budget.Notes,
		))
	}

	var created int64
	if len(toCreate) > 0 {
		created, err = uc.budgetRepo.BulkCreate(ctx, toCreate)
		if err != nil {
			return nil, fmt.Errorf("failed to copy budgets: %w", err)
		}
	}

	return &CopyMonthOutput{
		Created: created,
		Target:  target,
		Prev:    prev,
	}, nil
}
