package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/application/usecase/balance"
	"github.com/fin-mate/backend/internal/domain/entity"
	domainerror "github.com/fin-mate/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction updates.
// Nil fields are left unchanged; a non-nil TagIDs replaces the tag set.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	AccountID     *uuid.UUID
	CategoryID    *uuid.UUID
	Amount        *decimal.Decimal
	Type          *entity.TransactionType
	Date          *time.Time
	Description   *string
	TagIDs        *[]uuid.UUID
}

// UpdateTransactionOutput represents the output of a transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	categoryRepo    adapter.CategoryRepository
	tagRepo         adapter.TagRepository
	invalidator     balance.Invalidator
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
	tagRepo adapter.TagRepository,
	invalidator balance.Invalidator,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		tagRepo:         tagRepo,
		invalidator:     invalidator,
	}
}

// Execute performs the transaction update. The previous account is captured
// before the write so that a move between accounts invalidates both cached
// balances afterwards.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if transaction == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	owner, err := uc.accountRepo.FindByID(ctx, transaction.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if owner == nil || owner.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	previousAccountID := transaction.AccountID

	if input.AccountID != nil {
		transaction.AccountID = *input.AccountID
	}
	if input.CategoryID != nil {
		transaction.CategoryID = *input.CategoryID
	}
	if input.Amount != nil {
		transaction.Amount = *input.Amount
	}
	if input.Type != nil {
		transaction.Type = *input.Type
	}
	if input.Date != nil {
		transaction.Date = *input.Date
	}
	if input.Description != nil {
		transaction.Description = *input.Description
	}

	if err := validateTypeAndAmount(transaction.Type, transaction.Amount); err != nil {
		return nil, err
	}
	if _, _, err := resolveRefs(ctx, uc.accountRepo, uc.categoryRepo, input.UserID, transaction.AccountID, transaction.CategoryID); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	// The row is committed at this point, so the cached balances must be
	// evicted even if tag reconciliation fails below.
	if previousAccountID != transaction.AccountID {
		uc.invalidator.Invalidate(ctx, previousAccountID, transaction.AccountID)
	} else {
		uc.invalidator.Invalidate(ctx, transaction.AccountID)
	}

	if input.TagIDs != nil {
		if err := replaceTags(ctx, uc.tagRepo, input.UserID, transaction.ID, *input.TagIDs); err != nil {
			return nil, err
		}
	}

	return &UpdateTransactionOutput{
		Transaction: transaction,
	}, nil
}
