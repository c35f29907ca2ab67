package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/domain/entity"
	domainerror "github.com/fin-mate/backend/internal/domain/error"
)

// UpdateAccountInput represents the input for account updates. Nil fields
// are left unchanged.
type UpdateAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
	Name      *string
	Type      *entity.AccountType
}

// UpdateAccountOutput represents the output of an account update.
type UpdateAccountOutput struct {
	Account *entity.Account
}

// UpdateAccountUseCase handles account update logic. The currency is fixed
// at creation and cannot be changed.
type UpdateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(accountRepo adapter.AccountRepository) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account update.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*UpdateAccountOutput, error) {
	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFound,
		)
	}
	if account.UserID != input.UserID {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeNotAuthorizedAccount,
			"not authorized to modify this account",
			domainerror.ErrNotAuthorizedToModifyAccount,
		)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeMissingAccountName,
				"account name is required",
				nil,
			)
		}
		if name != account.Name {
			exists, err := uc.accountRepo.ExistsByNameAndUser(ctx, name, input.UserID)
			if err != nil {
				return nil, fmt.Errorf("failed to check account name existence: %w", err)
			}
			if exists {
				return nil, domainerror.NewAccountError(
					domainerror.ErrCodeAccountNameExists,
					"an account with this name already exists",
					domainerror.ErrAccountNameExists,
				)
			}
			account.Name = name
		}
	}

	if input.Type != nil {
		if !isValidAccountType(*input.Type) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeInvalidAccountType,
				"account type must be CASH, CARD, DEPOSIT or CRYPTO",
				domainerror.ErrInvalidAccountType,
			)
		}
		account.Type = *input.Type
	}

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return &UpdateAccountOutput{
		Account: account,
	}, nil
}
