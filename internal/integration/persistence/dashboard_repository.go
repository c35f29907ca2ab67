package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fin-mate/backend/internal/application/usecase/dashboard"
	"github.com/fin-mate/backend/internal/domain/entity"
	"github.com/fin-mate/backend/internal/integration/persistence/model"
)

// DashboardRepository implements the dashboard.Repository interface using GORM.
// It reuses the budget and transaction repositories for the queries they
// already cover and adds the grouped aggregations.
type DashboardRepository struct {
	db              *gorm.DB
	budgetRepo      *BudgetRepository
	transactionRepo *TransactionRepository
}

// NewDashboardRepository creates a new DashboardRepository instance.
func NewDashboardRepository(db *gorm.DB) dashboard.Repository {
	return &DashboardRepository{
		db:              db,
		budgetRepo:      &BudgetRepository{db: db},
		transactionRepo: &TransactionRepository{db: db},
	}
}

// GetAccountsWithBalance retrieves the user's accounts annotated with
// their derived balance, ordered by name.
func (r *DashboardRepository) GetAccountsWithBalance(ctx context.Context, userID uuid.UUID) ([]*entity.AccountWithBalance, error) {
	type accountBalanceRow struct {
		model.AccountModel
		Balance decimal.Decimal
	}

	var rows []accountBalanceRow

	err := r.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Select("accounts.*, COALESCE(SUM(CASE WHEN transactions.type = ? THEN transactions.amount ELSE -transactions.amount END), 0) AS balance", entity.TransactionTypeIncome).
		Joins("LEFT JOIN transactions ON transactions.account_id = accounts.id").
		Where("accounts.user_id = ?", userID).
		Group("accounts.id").
		Order("accounts.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts with balance: %w", err)
	}

	accounts := make([]*entity.AccountWithBalance, len(rows))
	for i := range rows {
		accounts[i] = &entity.AccountWithBalance{
			Account: rows[i].AccountModel.ToEntity(),
			Balance: rows[i].Balance,
		}
	}

	return accounts, nil
}

// GetCurrencyTotals sums transactions in [start, end) grouped by account
// currency and transaction type.
func (r *DashboardRepository) GetCurrencyTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]dashboard.CurrencyTotal, error) {
	type currencyTotalRow struct {
		Currency string
		Type     string
		Total    decimal.Decimal
	}

	var rows []currencyTotalRow

	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("accounts.currency AS currency, transactions.type AS type, SUM(transactions.amount) AS total").
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.user_id = ? AND transactions.date >= ? AND transactions.date < ?", userID, start, end).
		Group("accounts.currency, transactions.type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get currency totals: %w", err)
	}

	totals := make([]dashboard.CurrencyTotal, len(rows))
	for i := range rows {
		totals[i] = dashboard.CurrencyTotal{
			Currency: entity.Currency(rows[i].Currency),
			Type:     entity.TransactionType(rows[i].Type),
			Total:    rows[i].Total,
		}
	}

	return totals, nil
}

// GetCategoryExpenseTotals sums expense transactions in [start, end)
// grouped by category and account currency.
func (r *DashboardRepository) GetCategoryExpenseTotals(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]dashboard.CategoryExpenseTotal, error) {
	type categoryTotalRow struct {
		CategoryID   uuid.UUID
		CategoryName string
		Currency     string
		Total        decimal.Decimal
	}

	var rows []categoryTotalRow

	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("transactions.category_id AS category_id, categories.name AS category_name, accounts.currency AS currency, SUM(transactions.amount) AS total").
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("accounts.user_id = ? AND transactions.type = ? AND transactions.date >= ? AND transactions.date < ?",
			userID, entity.TransactionTypeExpense, start, end).
		Group("transactions.category_id, categories.name, accounts.currency").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get category expense totals: %w", err)
	}

	totals := make([]dashboard.CategoryExpenseTotal, len(rows))
	for i := range rows {
		totals[i] = dashboard.CategoryExpenseTotal{
			CategoryID:   rows[i].CategoryID,
			CategoryName: rows[i].CategoryName,
			Currency:     entity.Currency(rows[i].Currency),
			Total:        rows[i].Total,
		}
	}

	return totals, nil
}

// GetBudgetsWithCategory retrieves the user's budgets for the month with
// their categories, ordered by category name.
func (r *DashboardRepository) GetBudgetsWithCategory(ctx context.Context, userID uuid.UUID, period time.Time) ([]*entity.BudgetWithCategory, error) {
	return r.budgetRepo.FindByUserAndPeriod(ctx, userID, period)
}

// GetRecentTransactions retrieves the user's most recent transactions
// across all accounts, ordered by date descending with insertion order
// breaking ties.
func (r *DashboardRepository) GetRecentTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.TransactionWithRefs, error) {
	var transactionModels []model.TransactionModel

	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.user_id = ?", userID).
		Preload("Account").
		Preload("Category").
		Order("transactions.date DESC, transactions.created_at DESC").
		Limit(limit).
		Find(&transactionModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}

	transactions := make([]*entity.TransactionWithRefs, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntityWithRefs()
	}

	if err := r.transactionRepo.loadTags(ctx, transactions); err != nil {
		return nil, err
	}

	return transactions, nil
}
