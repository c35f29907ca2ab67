package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/internal/domain/entity"
)

// CurrencyTotal is a period transaction subtotal grouped by account
// currency and transaction direction.
type CurrencyTotal struct {
	Currency entity.Currency
	Type     entity.TransactionType
	Total    decimal.Decimal
}

// CategoryExpenseTotal is a period expense subtotal grouped by category
// and account currency.
type CategoryExpenseTotal struct {
	CategoryID   uuid.UUID
	CategoryName string
	Currency     entity.Currency
	Total        decimal.Decimal
}

// Repository defines the aggregation queries the dashboard is built from.
type Repository interface {
	// GetAccountsWithBalance retrieves the user's accounts annotated with
	// their derived balance (signed transaction sum), ordered by name.
	GetAccountsWithBalance(ctx context.Context, userID uuid.UUID) ([]*entity.AccountWithBalance, error)

	// GetCurrencyTotals sums transactions in [start, end) grouped by
	// account currency and transaction type.
	GetCurrencyTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]CurrencyTotal, error)

	// GetCategoryExpenseTotals sums expense transactions in [start, end)
	// grouped by category and account currency.
	GetCategoryExpenseTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]CategoryExpenseTotal, error)

	// GetBudgetsWithCategory retrieves the user's budgets for the month
	// given by its first day, with categories, ordered by category name.
	GetBudgetsWithCategory(ctx context.Context, userID uuid.UUID, period time.Time) ([]*entity.BudgetWithCategory, error)

	// GetRecentTransactions retrieves the user's most recent transactions
	// across all accounts, ordered by date descending with insertion order
	// breaking ties.
	GetRecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.TransactionWithRefs, error)
}

// RateProvider resolves exchange rates for a set of currency codes.
type RateProvider interface {
	GetRates(ctx context.Context, codes []string) map[string]decimal.Decimal
}
