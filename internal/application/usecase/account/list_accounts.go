package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/domain/entity"
)

// BalanceReader resolves an account's derived balance, typically through
// the balance cache.
type BalanceReader interface {
	Get(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
}

// ListAccountsInput represents the input for listing accounts.
type ListAccountsInput struct {
	UserID uuid.UUID
}

// ListAccountsOutput represents the output of listing accounts.
type ListAccountsOutput struct {
	Accounts []*entity.AccountWithBalance
}

// ListAccountsUseCase lists a user's accounts with their derived balances.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
	balances    BalanceReader
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository, balances BalanceReader) *ListAccountsUseCase {
	return &ListAccountsUseCase{
		accountRepo: accountRepo,
		balances:    balances,
	}
}

// Execute lists the user's accounts, each with its balance.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	accounts, err := uc.accountRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	out := &ListAccountsOutput{
		Accounts: make([]*entity.AccountWithBalance, 0, len(accounts)),
	}
	for _, account := range accounts {
		balance, err := uc.balances.Get(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve balance for account %s: %w", account.ID, err)
		}
		out.Accounts = append(out.Accounts, &entity.AccountWithBalance{
			Account: account,
			Balance: balance,
		})
	}

	return out, nil
}
