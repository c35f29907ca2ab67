// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUser retrieves all accounts for a given user, ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// ExistsByNameAndUser checks if an account name is already taken for the user.
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error)

	// SumBalance computes the account's derived balance as the signed sum
	// of its transaction amounts (income positive, expense negative),
	// defaulting to zero when no transactions exist.
	SumBalance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)

	// Update updates an existing account in the database.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
