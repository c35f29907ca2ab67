// Package dashboard composes accounts, transactions, budgets and exchange
// rates into the monthly dashboard snapshot.
package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/internal/domain/entity"
	domainerror "github.com/fin-mate/backend/internal/domain/error"
	"github.com/fin-mate/backend/internal/domain/period"
)

const (
	topCategoriesLimit  = 5
	recentTransactions  = 10
	conversionPrecision = 2
)

// MonthSummaryInput defines the input for the month summary use case.
type MonthSummaryInput struct {
	UserID uuid.UUID
	Start  time.Time
	End    time.Time
}

// AccountSummary is an account with its native balance and the balance
// converted to the base currency.
type AccountSummary struct {
	Account     *entity.Account
	Balance     decimal.Decimal
	BaseBalance decimal.Decimal
}

// CategorySummary is a top-spending category entry.
type CategorySummary struct {
	CategoryID uuid.UUID
	Name       string
	Total      decimal.Decimal
	Percent    float64
}

// MonthSummaryOutput is the full dashboard snapshot for one month.
type MonthSummaryOutput struct {
	Accounts      []AccountSummary
	BaseTotal     decimal.Decimal
	Income        decimal.Decimal
	Expenses      decimal.Decimal
	Net           decimal.Decimal
	TopCategories []CategorySummary
	Budgets       []*entity.BudgetProgress
	Recent        []*entity.TransactionWithRefs
	Rates         map[string]decimal.Decimal
}

// MonthSummaryUseCase builds the dashboard snapshot for a user and month.
// All monetary totals are converted to the base currency; each converted
// amount is rounded to 2 decimal places (half away from zero) immediately
// after multiplication, before summing. A currency with no resolvable rate
// converts with the neutral rate 1.
type MonthSummaryUseCase struct {
	repo         Repository
	rateProvider RateProvider
	baseCurrency entity.Currency
}

// NewMonthSummaryUseCase creates a new MonthSummaryUseCase.
func NewMonthSummaryUseCase(repo Repository, rateProvider RateProvider, baseCurrency entity.Currency) *MonthSummaryUseCase {
	return &MonthSummaryUseCase{
		repo:         repo,
		rateProvider: rateProvider,
		baseCurrency: baseCurrency,
	}
}

// Execute assembles the snapshot for [input.Start, input.End).
func (uc *MonthSummaryUseCase) Execute(ctx context.Context, input MonthSummaryInput) (*MonthSummaryOutput, error) {
	if !input.End.After(input.Start) {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			"end must be after start",
			domainerror.ErrInvalidDateRange,
		)
	}

	accounts, err := uc.repo.GetAccountsWithBalance(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeDashboardInternalError, "failed to load accounts", err)
	}

	currencyTotals, err := uc.repo.GetCurrencyTotals(ctx, input.UserID, input.Start, input.End)
	if err != nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeDashboardInternalError, "failed to load period totals", err)
	}

	categoryTotals, err := uc.repo.GetCategoryExpenseTotals(ctx, input.UserID, input.Start, input.End)
	if err != nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeDashboardInternalError, "failed to load category totals", err)
	}

	budgets, err := uc.repo.GetBudgetsWithCategory(ctx, input.UserID, period.FirstDay(input.Start))
	if err != nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeDashboardInternalError, "failed to load budgets", err)
	}

	recent, err := uc.repo.GetRecentTransactions(ctx, input.UserID, recentTransactions)
	if err != nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeDashboardInternalError, "failed to load recent transactions", err)
	}

	rates := uc.rateProvider.GetRates(ctx, collectCurrencies(accounts, currencyTotals, categoryTotals))

	convert := func(amount decimal.Decimal, currency entity.Currency) decimal.Decimal {
		code := string(currency)
		if code == "" {
			code = string(uc.baseCurrency)
		}
		rate, ok := rates[code]
		if !ok {
			rate = decimal.NewFromInt(1)
		}
		return amount.Mul(rate).Round(conversionPrecision)
	}

	out := &MonthSummaryOutput{
		Accounts: make([]AccountSummary, 0, len(accounts)),
		Recent:   recent,
		Rates:    rates,
	}

	for _, a := range accounts {
		base := convert(a.Balance, a.Account.Currency)
		out.Accounts = append(out.Accounts, AccountSummary{
			Account:     a.Account,
			Balance:     a.Balance,
			BaseBalance: base,
		})
		out.BaseTotal = out.BaseTotal.Add(base)
	}

	for _, ct := range currencyTotals {
		converted := convert(ct.Total, ct.Currency)
		switch ct.Type {
		case entity.TransactionTypeIncome:
			out.Income = out.Income.Add(converted)
		case entity.TransactionTypeExpense:
			out.Expenses = out.Expenses.Add(converted)
		}
	}
	out.Net = out.Income.Sub(out.Expenses)

	spentByCategory := make(map[uuid.UUID]decimal.Decimal)
	nameByCategory := make(map[uuid.UUID]string)
	for _, ct := range categoryTotals {
		spentByCategory[ct.CategoryID] = spentByCategory[ct.CategoryID].Add(convert(ct.Total, ct.Currency))
		nameByCategory[ct.CategoryID] = ct.CategoryName
	}

	out.TopCategories = topCategories(spentByCategory, nameByCategory, out.Expenses)
	out.Budgets = budgetProgress(budgets, spentByCategory)

	return out, nil
}

// topCategories ranks categories by converted expense total, descending,
// keeping at most topCategoriesLimit entries. Ties rank alphabetically so
// the order is stable.
func topCategories(
	spent map[uuid.UUID]decimal.Decimal,
	names map[uuid.UUID]string,
	expenses decimal.Decimal,
) []CategorySummary {
	categories := make([]CategorySummary, 0, len(spent))
	for id, total := range spent {
		percent := 0.0
		if expenses.IsPositive() {
			percent, _ = total.Div(expenses).Mul(decimal.NewFromInt(100)).Float64()
		}
		categories = append(categories, CategorySummary{
			CategoryID: id,
			Name:       names[id],
			Total:      total,
			Percent:    percent,
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		if !categories[i].Total.Equal(categories[j].Total) {
			return categories[i].Total.GreaterThan(categories[j].Total)
		}
		return categories[i].Name < categories[j].Name
	})

	if len(categories) > topCategoriesLimit {
		categories = categories[:topCategoriesLimit]
	}
	return categories
}

// budgetProgress pairs each budget with the converted amount spent in its
// category and the spent/limit percentage. A non-positive limit uses a 0.01
// denominator floor instead of dividing by zero.
func budgetProgress(
	budgets []*entity.BudgetWithCategory,
	spentByCategory map[uuid.UUID]decimal.Decimal,
) []*entity.BudgetProgress {
	out := make([]*entity.BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByCategory[b.Budget.CategoryID]

		denom := b.Budget.Limit
		if !denom.IsPositive() {
			denom = decimal.RequireFromString("0.01")
		}
		progress, _ := spent.Div(denom).Mul(decimal.NewFromInt(100)).Float64()

		out = append(out, &entity.BudgetProgress{
			Budget:   b.Budget,
			Category: b.Category,
			Spent:    spent,
			Progress: progress,
		})
	}
	return out
}

// collectCurrencies gathers every currency code the snapshot needs a rate
// for.
func collectCurrencies(
	accounts []*entity.AccountWithBalance,
	currencyTotals []CurrencyTotal,
	categoryTotals []CategoryExpenseTotal,
) []string {
	seen := make(map[string]struct{})
	for _, a := range accounts {
		seen[string(a.Account.Currency)] = struct{}{}
	}
	for _, ct := range currencyTotals {
		seen[string(ct.Currency)] = struct{}{}
	}
	for _, ct := range categoryTotals {
		seen[string(ct.Currency)] = struct{}{}
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	return codes
}
