package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/domain/entity"
	"github.com/fin-mate/backend/internal/integration/persistence/model"
)

// BudgetRepository implements the adapter.BudgetRepository interface using GORM.
type BudgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new BudgetRepository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &BudgetRepository{db: db}
}

// Create creates a new budget in the database.
func (r *BudgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)

	if err := r.db.WithContext(ctx).Create(budgetModel).Error; err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}

	return nil
}

// FindByID retrieves a budget by its ID. Returns nil when no budget matches.
func (r *BudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&budgetModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	return budgetModel.ToEntity(), nil
}

// FindByUserAndPeriod retrieves all budgets for the user in the given
// month with their categories, ordered by category name.
func (r *BudgetRepository) FindByUserAndPeriod(ctx context.Context, userID uuid.UUID, period time.Time) ([]*entity.BudgetWithCategory, error) {
	var budgetModels []model.BudgetModel

	err := r.db.WithContext(ctx).
		Preload("Category").
		Joins("JOIN categories ON categories.id = budgets.category_id").
		Where("budgets.user_id = ? AND budgets.period = ?", userID, period).
		Order("categories.name ASC").
		Find(&budgetModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find budgets by user and period: %w", err)
	}

	budgets := make([]*entity.BudgetWithCategory, len(budgetModels))
	for i := range budgetModels {
		budgets[i] = budgetModels[i].ToEntityWithCategory()
	}

	return budgets, nil
}

// FindCategoryIDsByUserAndPeriod returns the category IDs that already
// have a budget for the user in the given month.
func (r *BudgetRepository) FindCategoryIDsByUserAndPeriod(ctx context.Context, userID uuid.UUID, period time.Time) ([]uuid.UUID, error) {
	var categoryIDs []uuid.UUID

	err := r.db.WithContext(ctx).
		Model(&model.BudgetModel{}).
		Where("user_id = ? AND period = ?", userID, period).
		Pluck("category_id", &categoryIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find budget category IDs: %w", err)
	}

	return categoryIDs, nil
}

// ExistsByUserCategoryPeriod checks if a budget already exists for the
// (user, category, period) triple.
func (r *BudgetRepository) ExistsByUserCategoryPeriod(ctx context.Context, userID, categoryID uuid.UUID, period time.Time) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.BudgetModel{}).
		Where("user_id = ? AND category_id = ? AND period = ?", userID, categoryID, period).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check budget existence: %w", err)
	}

	return count > 0, nil
}

// BulkCreate inserts budgets in a single statement, silently skipping
// rows that conflict with an existing (user, category, period) triple.
// It returns the number of rows actually created.
func (r *BudgetRepository) BulkCreate(ctx context.Context, budgets []*entity.Budget) (int64, error) {
	if len(budgets) == 0 {
		return 0, nil
	}

	budgetModels := make([]*model.BudgetModel, len(budgets))
	for i, budget := range budgets {
		budgetModels[i] = model.BudgetFromEntity(budget)
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&budgetModels)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to bulk create budgets: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// Update updates an existing budget in the database.
func (r *BudgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)

	if err := r.db.WithContext(ctx).Save(budgetModel).Error; err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}

	return nil
}

// Delete removes a budget from the database.
func (r *BudgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.BudgetModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	return nil
}
