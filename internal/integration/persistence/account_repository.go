package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/domain/entity"
	"github.com/fin-mate/backend/internal/integration/persistence/model"
)

// AccountRepository implements the adapter.AccountRepository interface using GORM.
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account in the database.
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := model.AccountFromEntity(account)

	if err := r.db.WithContext(ctx).Create(accountModel).Error; err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// FindByID retrieves an account by its ID. Returns nil when no account matches.
func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountModel model.AccountModel

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accountModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return accountModel.ToEntity(), nil
}

// FindByUser retrieves all accounts for a given user, ordered by name.
func (r *AccountRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	var accountModels []model.AccountModel

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&accountModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts by user: %w", err)
	}

	accounts := make([]*entity.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToEntity()
	}

	return accounts, nil
}

// ExistsByNameAndUser checks if an account name is already taken for the user.
func (r *AccountRepository) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("name = ? AND user_id = ?", name, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}

	return count > 0, nil
}

// SumBalance computes the account's derived balance as the signed sum of
// its transaction amounts, defaulting to zero when no transactions exist.
func (r *AccountRepository) SumBalance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0)", entity.TransactionTypeIncome).
		Where("account_id = ?", accountID).
		Scan(&balance).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum account balance: %w", err)
	}

	return balance, nil
}

// Update updates an existing account in the database.
func (r *AccountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountModel := model.AccountFromEntity(account)

	if err := r.db.WithContext(ctx).Save(accountModel).Error; err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	return nil
}

// Delete removes an account from the database.
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AccountModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return nil
}
