// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/internal/application/adapter"
	"github.com/fin-mate/backend/internal/domain/entity"
	domainerror "github.com/fin-mate/backend/internal/domain/error"
)

// validateTypeAndAmount checks the transaction direction and that the
// amount is strictly positive.
func validateTypeAndAmount(transactionType entity.TransactionType, amount decimal.Decimal) error {
	if transactionType != entity.TransactionTypeIncome && transactionType != entity.TransactionTypeExpense {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be INCOME or EXPENSE",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"transaction amount must be positive",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

// resolveRefs loads the referenced account and category and enforces that
// both exist and belong to the acting user. A cross-owner reference is
// rejected before anything is written.
func resolveRefs(
	ctx context.Context,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
	userID, accountID, categoryID uuid.UUID,
) (*entity.Account, *entity.Category, error) {
	account, err := accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil || account.UserID != userID {
		return nil, nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnAccountNotFound,
			"account not found",
			domainerror.ErrAccountNotFoundForTransaction,
		)
	}

	category, err := categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category == nil {
		return nil, nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}
	if category.UserID != account.UserID {
		return nil, nil, domainerror.NewTransactionError(
			domainerror.ErrCodeOwnerMismatch,
			"account and category must belong to the same user",
			domainerror.ErrAccountCategoryOwnerMismatch,
		)
	}

	return account, category, nil
}

// replaceTags reconciles the transaction's tag associations with the
// desired set: missing links are added (conflict-tolerant), links not in
// the set are removed. Each tag must exist and belong to the acting user.
func replaceTags(
	ctx context.Context,
	tagRepo adapter.TagRepository,
	userID, transactionID uuid.UUID,
	tagIDs []uuid.UUID,
) error {
	desired := make(map[uuid.UUID]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		tag, err := tagRepo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to find tag: %w", err)
		}
		if tag == nil || tag.UserID != userID {
			return domainerror.NewTagError(
				domainerror.ErrCodeTagNotFound,
				"tag not found",
				domainerror.ErrTagNotFound,
			)
		}
		desired[id] = struct{}{}
	}

	currentIDs, err := tagRepo.FindTagIDsByTransaction(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to load transaction tags: %w", err)
	}
	current := make(map[uuid.UUID]struct{}, len(currentIDs))
	for _, id := range currentIDs {
		current[id] = struct{}{}
	}

	var toAdd []*entity.TransactionTag
	for id := range desired {
		if _, ok := current[id]; !ok {
			toAdd = append(toAdd, &entity.TransactionTag{
				TransactionID: transactionID,
				TagID:         id,
				AddedByID:     userID,
			})
		}
	}

	var toRemove []uuid.UUID
	for id := range current {
		if _, ok := desired[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}

	if len(toAdd) > 0 {
		if err := tagRepo.AddTransactionTags(ctx, toAdd); err != nil {
			return fmt.Errorf("failed to add transaction tags: %w", err)
		}
	}
	if len(toRemove) > 0 {
		if err := tagRepo.RemoveTransactionTags(ctx, transactionID, toRemove); err != nil {
			return fmt.Errorf("failed to remove transaction tags: %w", err)
		}
	}

	return nil
}
