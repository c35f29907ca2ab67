package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/domain/entity"
	"github.com/fin-mate/backend/internal/integration/persistence/model"
)

// CategoryRepository implements the adapter.CategoryRepository interface using GORM.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category in the database.
func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)

	if err := r.db.WithContext(ctx).Create(categoryModel).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// BulkCreate inserts categories in a single statement, silently skipping
// rows that conflict with an existing (user, name) pair.
func (r *CategoryRepository) BulkCreate(ctx context.Context, categories []*entity.Category) error {
	if len(categories) == 0 {
		return nil
	}

	categoryModels := make([]*model.CategoryModel, len(categories))
	for i, category := range categories {
		categoryModels[i] = model.CategoryFromEntity(category)
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&categoryModels).Error
	if err != nil {
		return fmt.Errorf("failed to bulk create categories: %w", err)
	}

	return nil
}

// FindByID retrieves a category by its ID. Returns nil when no category matches.
func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&categoryModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	return categoryModel.ToEntity(), nil
}

// FindByUser retrieves all categories for a given user, ordered by name.
func (r *CategoryRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categoryModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find categories by user: %w", err)
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}

	return categories, nil
}

// ExistsByNameAndUser checks if a category name is already taken for the user.
func (r *CategoryRepository) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("name = ? AND user_id = ?", name, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}

	return count > 0, nil
}

// Update updates an existing category in the database.
func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)

	if err := r.db.WithContext(ctx).Save(categoryModel).Error; err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	return nil
}

// Delete removes a category from the database.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CategoryModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
