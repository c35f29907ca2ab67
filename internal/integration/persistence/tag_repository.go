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

// TagRepository implements the adapter.TagRepository interface using GORM.
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository instance.
func NewTagRepository(db *gorm.DB) adapter.TagRepository {
	return &TagRepository{db: db}
}

// Create creates a new tag in the database.
func (r *TagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	tagModel := model.TagFromEntity(tag)

	if err := r.db.WithContext(ctx).Create(tagModel).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// FindByID retrieves a tag by its ID. Returns nil when no tag matches.
func (r *TagRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	var tagModel model.TagModel

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tagModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}

	return tagModel.ToEntity(), nil
}

// FindByUser retrieves all tags for a given user, ordered by name.
func (r *TagRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Tag, error) {
	var tagModels []model.TagModel

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&tagModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tags by user: %w", err)
	}

	tags := make([]*entity.Tag, len(tagModels))
	for i := range tagModels {
		tags[i] = tagModels[i].ToEntity()
	}

	return tags, nil
}

// ExistsByNameAndUser checks if a tag name is already taken for the user.
func (r *TagRepository) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.TagModel{}).
		Where("name = ? AND user_id = ?", name, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check tag existence: %w", err)
	}

	return count > 0, nil
}

// Update updates an existing tag in the database.
func (r *TagRepository) Update(ctx context.Context, tag *entity.Tag) error {
	tagModel := model.TagFromEntity(tag)

	if err := r.db.WithContext(ctx).Save(tagModel).Error; err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}

	return nil
}

// Delete removes a tag and its transaction associations from the database.
func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.TransactionTagModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.TagModel{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	return nil
}

// FindTagIDsByTransaction returns the IDs of tags attached to a transaction.
func (r *TagRepository) FindTagIDsByTransaction(ctx context.Context, transactionID uuid.UUID) ([]uuid.UUID, error) {
	var tagIDs []uuid.UUID

	err := r.db.WithContext(ctx).
		Model(&model.TransactionTagModel{}).
		Where("transaction_id = ?", transactionID).
		Pluck("tag_id", &tagIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tag IDs by transaction: %w", err)
	}

	return tagIDs, nil
}

// AddTransactionTags inserts association rows, silently skipping rows
// that conflict with an existing (transaction, tag) pair.
func (r *TagRepository) AddTransactionTags(ctx context.Context, links []*entity.TransactionTag) error {
	if len(links) == 0 {
		return nil
	}

	linkModels := make([]*model.TransactionTagModel, len(links))
	for i, link := range links {
		linkModels[i] = model.TransactionTagFromEntity(link)
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&linkModels).Error
	if err != nil {
		return fmt.Errorf("failed to add transaction tags: %w", err)
	}

	return nil
}

// RemoveTransactionTags removes the association rows for the given
// transaction and tag IDs.
func (r *TagRepository) RemoveTransactionTags(ctx context.Context, transactionID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Where("transaction_id = ? AND tag_id IN ?", transactionID, tagIDs).
		Delete(&model.TransactionTagModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove transaction tags: %w", err)
	}

	return nil
}
