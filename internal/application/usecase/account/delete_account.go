package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/application/usecase/balance"
	domainerror "github.com/fin-mate/backend/internal/domain/error"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// DeleteAccountUseCase handles account deletion logic.
type DeleteAccountUseCase struct {
	accountRepo adapter.AccountRepository
	invalidator balance.Invalidator
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(accountRepo adapter.AccountRepository, invalidator balance.Invalidator) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		accountRepo: accountRepo,
		invalidator: invalidator,
	}
}

// Execute performs the account deletion and drops the account's cached
// balance.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}
	if account.UserID != input.UserID {
		return domainerror.NewAccountError(
			domainerror.ErrCodeNotAuthorizedAccount,
			"not authorized to modify this account",
			domainerror.ErrNotAuthorizedToModifyAccount,
		)
	}

	if err := uc.accountRepo.Delete(ctx, input.AccountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	uc.invalidator.Invalidate(ctx, input.AccountID)

	return nil
}
