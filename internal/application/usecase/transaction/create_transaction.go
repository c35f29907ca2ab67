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
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  uuid.UUID
	Amount      decimal.Decimal
	Type        entity.TransactionType
	Date        time.Time
	Description string
	TagIDs      []uuid.UUID
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	categoryRepo    adapter.CategoryRepository
	tagRepo         adapter.TagRepository
	invalidator     balance.Invalidator
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
	tagRepo adapter.TagRepository,
	invalidator balance.Invalidator,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		tagRepo:         tagRepo,
		invalidator:     invalidator,
	}
}

// Execute performs the transaction creation. The account's cached balance
// is invalidated after the write commits.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validateTypeAndAmount(input.Type, input.Amount); err != nil {
		return nil, err
	}

	if _, _, err := resolveRefs(ctx, uc.accountRepo, uc.categoryRepo, input.UserID, input.AccountID, input.CategoryID); err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.AccountID,
		input.CategoryID,
		input.Amount,
		input.Type,
		input.Date,
		input.Description,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	// The row is committed at this point, so the cached balance must be
	// evicted even if tag reconciliation fails below.
	uc.invalidator.Invalidate(ctx, input.AccountID)

	if len(input.TagIDs) > 0 {
		if err := replaceTags(ctx, uc.tagRepo, input.UserID, transaction.ID, input.TagIDs); err != nil {
			return nil, err
		}
	}

	return &CreateTransactionOutput{
		Transaction: transaction,
	}, nil
}
