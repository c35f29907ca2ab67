// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/fin-mate/backend/internal/domain/entity"
)

// TagRepository defines the interface for tag persistence operations,
// including the transaction-tag association entity.
type TagRepository interface {
	// Create creates a new tag in the database.
	Create(ctx context.Context, tag *entity.Tag) error

	// FindByID retrieves a tag by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error)

	// FindByUser retrieves all tags for a given user, ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Tag, error)

	// ExistsByNameAndUser checks if a tag name is already taken for the user.
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error)

	// Update updates an existing tag in the database.
	Update(ctx context.Context, tag *entity.Tag) error

	// Delete removes a tag from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindTagIDsByTransaction returns the IDs of tags attached to a transaction.
	FindTagIDsByTransaction(ctx context.Context, transactionID uuid.UUID) ([]uuid.UUID, error)

	// AddTransactionTags inserts association rows in a single statement,
	// silently skipping rows that would violate the (transaction, tag)
	// unique constraint.
	AddTransactionTags(ctx context.Context, links []*entity.TransactionTag) error

	// RemoveTransactionTags removes the association rows for the given
	// transaction and tag IDs.
	RemoveTransactionTags(ctx context.Context, transactionID uuid.UUID, tagIDs []uuid.UUID) error
}
