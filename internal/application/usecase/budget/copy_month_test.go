package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/internal/domain/entity"
)

type fakeBudgetRepo struct {
	byPeriod map[time.Time][]*entity.BudgetWithCategory
	err      error
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{byPeriod: map[time.Time][]*entity.BudgetWithCategory{}}
}

func (r *fakeBudgetRepo) add(b *entity.Budget) {
	r.byPeriod[b.Period] = append(r.byPeriod[b.Period], &entity.BudgetWithCategory{Budget: b})
}

func (r *fakeBudgetRepo) Create(_ context.Context, b *entity.Budget) error {
	r.add(b)
	return nil
}

func (r *fakeBudgetRepo) FindByID(_ context.Context, _ uuid.UUID) (*entity.Budget, error) {
	return nil, nil
}

func (r *fakeBudgetRepo) FindByUserAndPeriod(_ context.Context, userID uuid.UUID, p time.Time) ([]*entity.BudgetWithCategory, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*entity.BudgetWithCategory
	for _, b := range r.byPeriod[p] {
		if b.Budget.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBudgetRepo) FindCategoryIDsByUserAndPeriod(_ context.Context, userID uuid.UUID, p time.Time) ([]uuid.UUID, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []uuid.UUID
	for _, b := range r.byPeriod[p] {
		if b.Budget.UserID == userID {
			out = append(out, b.Budget.CategoryID)
		}
	}
	return out, nil
}

func (r *fakeBudgetRepo) ExistsByUserCategoryPeriod(_ context.Context, userID, categoryID uuid.UUID, p time.Time) (bool, error) {
	for _, b := range r.byPeriod[p] {
		if b.Budget.UserID == userID && b.Budget.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBudgetRepo) BulkCreate(_ context.Context, budgets []*entity.Budget) (int64, error) {
	var created int64
	for _, b := range budgets {
		exists, _ := r.ExistsByUserCategoryPeriod(context.Background(), b.UserID, b.CategoryID, b.Period)
		if exists {
			continue
		}
		r.add(b)
		created++
	}
	return created, nil
}

func (r *fakeBudgetRepo) Update(_ context.Context, _ *entity.Budget) error { return nil }
func (r *fakeBudgetRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

var (
	march = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	april = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
)

func TestCopyMonthCopiesPreviousBudgets(t *testing.T) {
	repo := newFakeBudgetRepo()
	userID := uuid.New()
	repo.add(entity.NewBudget(userID, uuid.New(), decimal.RequireFromString("500"), march, "groceries"))
	repo.add(entity.NewBudget(userID, uuid.New(), decimal.RequireFromString("200"), march, ""))

	uc := NewCopyMonthUseCase(repo)

	out, err := uc.Execute(context.Background(), CopyMonthInput{UserID: userID, TargetDate: april})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Created != 2 {
		t.Errorf("expected 2 budgets created, got %d", out.Created)
	}
	if !out.Target.Equal(april) || !out.Prev.Equal(march) {
		t.Errorf("expected target %v and prev %v, got %v and %v", april, march, out.Target, out.Prev)
	}

	copied, _ := repo.FindByUserAndPeriod(context.Background(), userID, april)
	if len(copied) != 2 {
		t.Fatalf("expected 2 budgets in target month, got %d", len(copied))
	}
	if copied[0].Budget.Notes != "groceries" {
		t.Errorf("expected notes carried over, got %q", copied[0].Budget.Notes)
	}
}

func TestCopyMonthSecondCallCreatesNothing(t *testing.T) {
	repo := newFakeBudgetRepo()
	userID := uuid.New()
	repo.add(entity.NewBudget(userID, uuid.New(), decimal.RequireFromString("500"), march, ""))

	uc := NewCopyMonthUseCase(repo)

	first, err := uc.Execute(context.Background(), CopyMonthInput{UserID: userID, TargetDate: april})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Created != 1 {
		t.Fatalf("expected 1 budget created on first copy, got %d", first.Created)
	}

	second, err := uc.Execute(context.Background(), CopyMonthInput{UserID: userID, TargetDate: april})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Created != 0 {
		t.Errorf("expected 0 budgets created on second copy, got %d", second.Created)
	}
}

func TestCopyMonthSkipsCategoriesAlreadyBudgeted(t *testing.T) {
	repo := newFakeBudgetRepo()
	userID := uuid.New()
	sharedCategory := uuid.New()
	repo.add(entity.NewBudget(userID, sharedCategory, decimal.RequireFromString("500"), march, ""))
	repo.add(entity.NewBudget(userID, uuid.New(), decimal.RequireFromString("300"), march, ""))
	// Target month already budgets the shared category with its own limit.
	repo.add(entity.NewBudget(userID, sharedCategory, decimal.RequireFromString("999"), april, ""))

	uc := NewCopyMonthUseCase(repo)

	out, err := uc.Execute(context.Background(), CopyMonthInput{UserID: userID, TargetDate: april})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Created != 1 {
		t.Errorf("expected only the unbudgeted category copied, got %d", out.Created)
	}

	targetBudgets, _ := repo.FindByUserAndPeriod(context.Background(), userID, april)
	for _, b := range targetBudgets {
		if b.Budget.CategoryID == sharedCategory && !b.Budget.Limit.Equal(decimal.RequireFromString("999")) {
			t.Errorf("existing target budget must not be overwritten, got limit %s", b.Budget.Limit)
		}
	}
}

func TestCopyMonthNormalizesTargetToFirstDay(t *testing.T) {
	repo := newFakeBudgetRepo()
	userID := uuid.New()
	repo.add(entity.NewBudget(userID, uuid.New(), decimal.RequireFromString("100"), march, ""))

	uc := NewCopyMonthUseCase(repo)

	out, err := uc.Execute(context.Background(), CopyMonthInput{
		UserID:     userID,
		TargetDate: time.Date(2025, time.April, 17, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Target.Equal(april) {
		t.Errorf("expected target normalized to %v, got %v", april, out.Target)
	}
	if out.Created != 1 {
		t.Errorf("expected 1 budget created, got %d", out.Created)
	}
}

func TestCopyMonthPropagatesRepositoryError(t *testing.T) {
	repo := newFakeBudgetRepo()
	repo.err = errors.New("db down")

	uc := NewCopyMonthUseCase(repo)

	if _, err := uc.Execute(context.Background(), CopyMonthInput{UserID: uuid.New(), TargetDate: april}); err == nil {
		t.Fatal("expected error")
	}
}
