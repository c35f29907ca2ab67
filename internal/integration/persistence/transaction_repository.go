package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/domain/entity"
	"github.com/fin-mate/backend/internal/integration/persistence/model"
)

// TransactionRepository implements the adapter.TransactionRepository interface using GORM.
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new TransactionRepository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create creates a new transaction in the database.
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)

	if err := r.db.WithContext(ctx).Create(transactionModel).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// FindByID retrieves a transaction by its ID. Returns nil when no
// transaction matches.
func (r *TransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&transactionModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves transactions matching the filter with their
// account, category and tags, ordered by date descending with insertion
// order breaking ties.
func (r *TransactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.TransactionWithRefs, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("transactions.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("transactions.date < ?", *filter.EndDate)
	}
	if filter.AccountID != nil {
		query = query.Where("transactions.account_id = ?", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		query = query.Where("transactions.category_id = ?", *filter.CategoryID)
	}
	if filter.Type != nil {
		query = query.Where("transactions.type = ?", string(*filter.Type))
	}
	if filter.TagID != nil {
		query = query.
			Joins("JOIN transaction_tags ON transaction_tags.transaction_id = transactions.id").
			Where("transaction_tags.tag_id = ?", *filter.TagID)
	}

	var transactionModels []model.TransactionModel

	err := query.
		Preload("Account").
		Preload("Category").
		Order("transactions.date DESC, transactions.created_at DESC").
		Find(&transactionModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions by filter: %w", err)
	}

	transactions := make([]*entity.TransactionWithRefs, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntityWithRefs()
	}

	if err := r.loadTags(ctx, transactions); err != nil {
		return nil, err
	}

	return transactions, nil
}

// loadTags attaches tags to the given transactions with a single
// association query.
func (r *TransactionRepository) loadTags(ctx context.Context, transactions []*entity.TransactionWithRefs) error {
	if len(transactions) == 0 {
		return nil
	}

	transactionIDs := make([]uuid.UUID, len(transactions))
	for i, transaction := range transactions {
		transactionIDs[i] = transaction.Transaction.ID
	}

	var linkModels []model.TransactionTagModel

	err := r.db.WithContext(ctx).
		Preload("Tag").
		Where("transaction_id IN ?", transactionIDs).
		Find(&linkModels).Error
	if err != nil {
		return fmt.Errorf("failed to load transaction tags: %w", err)
	}

	tagsByTransaction := make(map[uuid.UUID][]*entity.Tag)
	for i := range linkModels {
		if linkModels[i].Tag == nil {
			continue
		}
		tagsByTransaction[linkModels[i].TransactionID] = append(
			tagsByTransaction[linkModels[i].TransactionID],
			linkModels[i].Tag.ToEntity(),
		)
	}

	for _, transaction := range transactions {
		transaction.Tags = tagsByTransaction[transaction.Transaction.ID]
	}

	return nil
}

// Update updates an existing transaction in the database.
func (r *TransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)

	if err := r.db.WithContext(ctx).Save(transactionModel).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return nil
}

// Delete removes a transaction and its tag associations from the database.
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", id).Delete(&model.TransactionTagModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.TransactionModel{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}
