// Package account contains account-related use cases.
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

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID   uuid.UUID
	Name     string
	Currency entity.Currency
	Type     entity.AccountType
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeMissingAccountName,
			"account name is required",
			nil,
		)
	}

	if !isValidCurrency(input.Currency) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidCurrency,
			"currency must be UAH, USD or EUR",
			domainerror.ErrInvalidCurrency,
		)
	}

	if !isValidAccountType(input.Type) {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountType,
			"account type must be CASH, CARD, DEPOSIT or CRYPTO",
			domainerror.ErrInvalidAccountType,
		)
	}

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

	account := entity.NewAccount(input.UserID, name, input.Currency, input.Type)

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &CreateAccountOutput{
		Account: account,
	}, nil
}

// isValidCurrency validates the account currency.
func isValidCurrency(currency entity.Currency) bool {
	switch currency {
	case entity.CurrencyUAH, entity.CurrencyUSD, entity.CurrencyEUR:
		return true
	}
	return false
}

// isValidAccountType validates the account type.
func isValidAccountType(accountType entity.AccountType) bool {
	switch accountType {
	case entity.AccountTypeCash, entity.AccountTypeCard, entity.AccountTypeDeposit, entity.AccountTypeCrypto:
		return true
	}
	return false
}
