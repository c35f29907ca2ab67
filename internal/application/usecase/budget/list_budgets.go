package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/application/usecase/dashboard"
	"github.com/fin-mate/backend/internal/domain/entity"
	"github.com/fin-mate/backend/internal/domain/period"
)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID uuid.UUID
	Period time.Time
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*entity.BudgetProgress
	Period  time.Time
}

// ListBudgetsUseCase lists a month's budgets with the amount spent in each
// category, converted to the base currency, and the spent/limit percentage.
type ListBudgetsUseCase struct {
	budgetRepo   adapter.BudgetRepository
	summaryRepo  dashboard.Repository
	rateProvider dashboard.RateProvider
	baseCurrency entity.Currency
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(
	budgetRepo adapter.BudgetRepository,
	summaryRepo dashboard.Repository,
	rateProvider dashboard.RateProvider,
	baseCurrency entity.Currency,
) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo:   budgetRepo,
		summaryRepo:  summaryRepo,
		rateProvider: rateProvider,
		baseCurrency: baseCurrency,
	}
}

// Execute lists the budgets for the month containing input.Period.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	start, end := period.MonthRange(input.Period)

	budgets, err := uc.budgetRepo.FindByUserAndPeriod(ctx, input.UserID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	categoryTotals, err := uc.summaryRepo.GetCategoryExpenseTotals(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load category totals: %w", err)
	}

	codes := make([]string, 0, len(categoryTotals))
	for _, ct := range categoryTotals {
		codes = append(codes, string(ct.Currency))
	}
	rates := uc.rateProvider.GetRates(ctx, codes)

	spent := make(map[uuid.UUID]decimal.Decimal, len(categoryTotals))
	for _, ct := range categoryTotals {
		rate, ok := rates[string(ct.Currency)]
		if !ok {
			rate = decimal.NewFromInt(1)
		}
		spent[ct.CategoryID] = spent[ct.CategoryID].Add(ct.Total.Mul(rate).Round(2))
	}

	out := &ListBudgetsOutput{
		Budgets: make([]*entity.BudgetProgress, 0, len(budgets)),
		Period:  start,
	}
	for _, b := range budgets {
		categorySpent := spent[b.Budget.CategoryID]

		denom := b.Budget.Limit
		if !denom.IsPositive() {
			denom = decimal.RequireFromString("0.01")
		}
		progress, _ := categorySpent.Div(denom).Mul(decimal.NewFromInt(100)).Float64()

		out.Budgets = append(out.Budgets, &entity.BudgetProgress{
			Budget:   b.Budget,
			Category: b.Category,
			Spent:    categorySpent,
			Progress: progress,
		})
	}

	return out, nil
}
