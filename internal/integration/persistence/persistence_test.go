package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/domain/entity"
	"github.com/fin-mate/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.UserModel{},
		&model.AccountModel{},
		&model.CategoryModel{},
		&model.TagModel{},
		&model.TransactionModel{},
		&model.TransactionTagModel{},
		&model.BudgetModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()

	user := entity.NewUser("user@example.com", "Test User", "hash")
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	return user
}

func seedAccount(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, currency entity.Currency) *entity.Account {
	t.Helper()

	account := entity.NewAccount(userID, name, currency, entity.AccountTypeCard)
	if err := NewAccountRepository(db).Create(context.Background(), account); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	return account
}

func seedCategory(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *entity.Category {
	t.Helper()

	category := entity.NewCategory(userID, name)
	if err := NewCategoryRepository(db).Create(context.Background(), category); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	return category
}

func seedTransaction(t *testing.T, db *gorm.DB, accountID, categoryID uuid.UUID, amount string, txType entity.TransactionType, date time.Time) *entity.Transaction {
	t.Helper()

	transaction := entity.NewTransaction(accountID, categoryID, decimal.RequireFromString(amount), txType, date, "")
	if err := NewTransactionRepository(db).Create(context.Background(), transaction); err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}

	return transaction
}

func TestAccountRepositorySumBalance(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db)
	account := seedAccount(t, db, user.ID, "Main", entity.CurrencyUAH)
	category := seedCategory(t, db, user.ID, "Food")

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	seedTransaction(t, db, account.ID, category.ID, "1000.00", entity.TransactionTypeIncome, date)
	seedTransaction(t, db, account.ID, category.ID, "150.50", entity.TransactionTypeExpense, date)
	seedTransaction(t, db, account.ID, category.ID, "49.50", entity.TransactionTypeExpense, date)

	repo := NewAccountRepository(db)

	balance, err := repo.SumBalance(ctx, account.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.Equal(decimal.RequireFromString("800.00")) {
		t.Errorf("expected balance 800.00, got %s", balance)
	}
}

func TestAccountRepositorySumBalanceEmpty(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db)
	account := seedAccount(t, db, user.ID, "Empty", entity.CurrencyUAH)

	balance, err := NewAccountRepository(db).SumBalance(ctx, account.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !balance.IsZero() {
		t.Errorf("expected zero balance, got %s", balance)
	}
}

func TestAccountRepositoryFindByIDNotFound(t *testing.T) {
	db := newTestDB(t)

	account, err := NewAccountRepository(db).FindByID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account != nil {
		t.Errorf("expected nil account, got %+v", account)
	}
}

func TestCategoryRepositoryBulkCreateSkipsConflicts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db)
	repo := NewCategoryRepository(db)

	seedCategory(t, db, user.ID, "Food")

	batch := []*entity.Category{
		entity.NewCategory(user.ID, "Food"),
		entity.NewCategory(user.ID, "Transport"),
	}

	if err := repo.BulkCreate(ctx, batch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	categories, err := repo.FindByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "Food" || categories[1].Name != "Transport" {
		t.Errorf("unexpected category names: %s, %s", categories[0].Name, categories[1].Name)
	}
}

func TestBudgetRepositoryBulkCreateReturnsCreatedCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db)
	food := seedCategory(t, db, user.ID, "Food")
	transport := seedCategory(t, db, user.ID, "Transport")

	period := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := NewBudgetRepository(db)

	existing := entity.NewBudget(user.ID, food.ID, decimal.RequireFromString("5000"), period, "")
	if err := repo.Create(ctx, existing); err != nil {
		t.Fatalf("failed to seed budget: %v", err)
	}

	created, err := repo.BulkCreate(ctx, []*entity.Budget{
		entity.NewBudget(user.ID, food.ID, decimal.RequireFromString("4000"), period, ""),
		entity.NewBudget(user.ID, transport.ID, decimal.RequireFromString("1500"), period, ""),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created != 1 {
		t.Errorf("expected 1 created row, got %d", created)
	}

	budgets, err := repo.FindByUserAndPeriod(ctx, user.ID, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(budgets) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(budgets))
	}
	if !budgets[0].Budget.Limit.Equal(decimal.RequireFromString("5000")) {
		t.Errorf("existing budget limit should be untouched, got %s", budgets[0].Budget.Limit)
	}
}

func TestBudgetRepositoryFindCategoryIDsByUserAndPeriod(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db)
	food := seedCategory(t, db, user.ID, "Food")
	transport := seedCategory(t, db, user.ID, "Transport")

	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	repo := NewBudgetRepository(db)

	limit := decimal.RequireFromString("1000")
	for _, budget := range []*entity.Budget{
		entity.NewBudget(user.ID, food.ID, limit, march, ""),
		entity.NewBudget(user.ID, transport.ID, limit, march, ""),
		entity.NewBudget(user.ID, food.ID, limit, april, ""),
	} {
		if err := repo.Create(ctx, budget); err != nil {
			t.Fatalf("failed to seed budget: %v", err)
		}
	}

	categoryIDs, err := repo.FindCategoryIDsByUserAndPeriod(ctx, user.ID, march)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(categoryIDs) != 2 {
		t.Errorf("expected 2 category IDs for march, got %d", len(categoryIDs))
	}
}

func TestTransactionRepositoryFindByFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db)
	other := entity.NewUser("other@example.com", "Other", "hash")
	if err := NewUserRepository(db).Create(ctx, other); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	account := seedAccount(t, db, user.ID, "Main", entity.CurrencyUAH)
	otherAccount := seedAccount(t, db, other.ID, "Foreign", entity.CurrencyUAH)
	food := seedCategory(t, db, user.ID, "Food")
	transport := seedCategory(t, db, user.ID, "Transport")

	older := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	seedTransaction(t, db, account.ID, food.ID, "100.00", entity.TransactionTypeExpense, older)
	newest := seedTransaction(t, db, account.ID, transport.ID, "50.00", entity.TransactionTypeExpense, newer)
	seedTransaction(t, db, otherAccount.ID, food.ID, "999.00", entity.TransactionTypeExpense, newer)

	repo := NewTransactionRepository(db)

	results, err := repo.FindByFilter(ctx, adapter.TransactionFilter{UserID: user.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(results))
	}
	if results[0].Transaction.ID != newest.ID {
		t.Errorf("expected newest transaction first")
	}
	if results[0].Account == nil || results[0].Account.Name != "Main" {
		t.Errorf("expected account to be loaded")
	}
	if results[0].Category == nil || results[0].Category.Name != "Transport" {
		t.Errorf("expected category to be loaded")
	}

	expenseType := entity.TransactionTypeExpense
	filtered, err := repo.FindByFilter(ctx, adapter.TransactionFilter{
		UserID:     user.ID,
		CategoryID: &food.ID,
		Type:       &expenseType,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("expected 1 filtered transaction, got %d", len(filtered))
	}

	endExclusive := newer
	ranged, err := repo.FindByFilter(ctx, adapter.TransactionFilter{
		UserID:  user.ID,
		EndDate: &endExclusive,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranged) != 1 {
		t.Fatalf("expected end date to be exclusive, got %d transactions", len(ranged))
	}
}

func TestTransactionRepositoryFindByFilterTagAndLoadedTags(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db)
	account := seedAccount(t, db, user.ID, "Main", entity.CurrencyUAH)
	category := seedCategory(t, db, user.ID, "Food")

	tagRepo := NewTagRepository(db)
	vacation := entity.NewTag(user.ID, "vacation", entity.DefaultTagColor)
	if err := tagRepo.Create(ctx, vacation); err != nil {
		t.Fatalf("failed to seed tag: %v", err)
	}

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tagged := seedTransaction(t, db, account.ID, category.ID, "100.00", entity.TransactionTypeExpense, date)
	seedTransaction(t, db, account.ID, category.ID, "200.00", entity.TransactionTypeExpense, date)

	err := tagRepo.AddTransactionTags(ctx, []*entity.TransactionTag{
		{TransactionID: tagged.ID, TagID: vacation.ID, AddedByID: user.ID},
	})
	if err != nil {
		t.Fatalf("failed to add transaction tag: %v", err)
	}

	results, err := NewTransactionRepository(db).FindByFilter(ctx, adapter.TransactionFilter{
		UserID: user.ID,
		TagID:  &vacation.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 tagged transaction, got %d", len(results))
	}
	if results[0].Transaction.ID != tagged.ID {
		t.Errorf("expected the tagged transaction")
	}
	if len(results[0].Tags) != 1 || results[0].Tags[0].Name != "vacation" {
		t.Errorf("expected vacation tag to be loaded, got %+v", results[0].Tags)
	}
}

func TestTagRepositoryTransactionTagLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db)
	account := seedAccount(t, db, user.ID, "Main", entity.CurrencyUAH)
	category := seedCategory(t, db, user.ID, "Food")

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	transaction := seedTransaction(t, db, account.ID, category.ID, "100.00", entity.TransactionTypeExpense, date)

	repo := NewTagRepository(db)

	first := entity.NewTag(user.ID, "first", entity.DefaultTagColor)
	second := entity.NewTag(user.ID, "second", entity.DefaultTagColor)
	for _, tag := range []*entity.Tag{first, second} {
		if err := repo.Create(ctx, tag); err != nil {
			t.Fatalf("failed to seed tag: %v", err)
		}
	}

	links := []*entity.TransactionTag{
		{TransactionID: transaction.ID, TagID: first.ID, AddedByID: user.ID},
		{TransactionID: transaction.ID, TagID: second.ID, AddedByID: user.ID},
		{TransactionID: transaction.ID, TagID: first.ID, AddedByID: user.ID},
	}
	if err := repo.AddTransactionTags(ctx, links); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tagIDs, err := repo.FindTagIDsByTransaction(ctx, transaction.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tagIDs) != 2 {
		t.Fatalf("duplicate link should be skipped, got %d links", len(tagIDs))
	}

	if err := repo.RemoveTransactionTags(ctx, transaction.ID, []uuid.UUID{first.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tagIDs, err = repo.FindTagIDsByTransaction(ctx, transaction.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tagIDs) != 1 || tagIDs[0] != second.ID {
		t.Errorf("expected only the second tag to remain, got %v", tagIDs)
	}
}

func TestDashboardRepositoryAggregations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db)
	uah := seedAccount(t, db, user.ID, "Hryvnia", entity.CurrencyUAH)
	usd := seedAccount(t, db, user.ID, "Dollars", entity.CurrencyUSD)
	food := seedCategory(t, db, user.ID, "Food")
	transport := seedCategory(t, db, user.ID, "Transport")

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	inMonth := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	outOfMonth := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)

	seedTransaction(t, db, uah.ID, food.ID, "1000.00", entity.TransactionTypeIncome, inMonth)
	seedTransaction(t, db, uah.ID, food.ID, "300.00", entity.TransactionTypeExpense, inMonth)
	seedTransaction(t, db, uah.ID, transport.ID, "200.00", entity.TransactionTypeExpense, inMonth)
	seedTransaction(t, db, usd.ID, food.ID, "50.00", entity.TransactionTypeExpense, inMonth)
	seedTransaction(t, db, uah.ID, food.ID, "999.00", entity.TransactionTypeExpense, outOfMonth)

	repo := NewDashboardRepository(db)

	accounts, err := repo.GetAccountsWithBalance(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].Account.Name != "Dollars" {
		t.Errorf("expected accounts ordered by name, got %s first", accounts[0].Account.Name)
	}
	if !accounts[0].Balance.Equal(decimal.RequireFromString("-50.00")) {
		t.Errorf("expected Dollars balance -50.00, got %s", accounts[0].Balance)
	}
	if !accounts[1].Balance.Equal(decimal.RequireFromString("-499.00")) {
		t.Errorf("expected Hryvnia balance -499.00, got %s", accounts[1].Balance)
	}

	currencyTotals, err := repo.GetCurrencyTotals(ctx, user.ID, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(currencyTotals) != 3 {
		t.Fatalf("expected 3 currency totals, got %d", len(currencyTotals))
	}

	byKey := make(map[string]decimal.Decimal)
	for _, total := range currencyTotals {
		byKey[string(total.Currency)+"/"+string(total.Type)] = total.Total
	}
	if !byKey["UAH/INCOME"].Equal(decimal.RequireFromString("1000.00")) {
		t.Errorf("expected UAH income 1000.00, got %s", byKey["UAH/INCOME"])
	}
	if !byKey["UAH/EXPENSE"].Equal(decimal.RequireFromString("500.00")) {
		t.Errorf("expected UAH expenses 500.00, got %s", byKey["UAH/EXPENSE"])
	}
	if !byKey["USD/EXPENSE"].Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("expected USD expenses 50.00, got %s", byKey["USD/EXPENSE"])
	}

	categoryTotals, err := repo.GetCategoryExpenseTotals(ctx, user.ID, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categoryTotals) != 3 {
		t.Fatalf("expected 3 category totals, got %d", len(categoryTotals))
	}

	recent, err := repo.GetRecentTransactions(ctx, user.ID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected recent transactions capped at 3, got %d", len(recent))
	}
	if recent[len(recent)-1].Transaction.Date.Equal(outOfMonth) {
		t.Errorf("expected recent transactions ordered by date descending")
	}
}

func TestUserRepositoryEmailLookups(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db)
	repo := NewUserRepository(db)

	found, err := repo.FindByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil || found.ID != user.ID {
		t.Errorf("expected to find seeded user")
	}

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown email")
	}

	exists, err := repo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Errorf("expected email to exist")
	}
}
