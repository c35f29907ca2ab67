package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/internal/domain/entity"
	domainerror "github.com/fin-mate/backend/internal/domain/error"
)

func seedTransaction(repo *fakeTransactionRepo, accountID, categoryID uuid.UUID) *entity.Transaction {
	transaction := entity.NewTransaction(
		accountID, categoryID, decimal.RequireFromString("50"), entity.TransactionTypeExpense, testDate, "")
	repo.byID[transaction.ID] = transaction
	return transaction
}

func TestUpdateTransactionMoveInvalidatesBothAccounts(t *testing.T) {
	userID := uuid.New()
	oldAccount := entity.NewAccount(userID, "Old", entity.CurrencyUAH, entity.AccountTypeCard)
	newAccount := entity.NewAccount(userID, "New", entity.CurrencyUAH, entity.AccountTypeCash)
	category := entity.NewCategory(userID, "Food")

	repo := newFakeTransactionRepo()
	transaction := seedTransaction(repo, oldAccount.ID, category.ID)

	invalidator := &fakeInvalidator{}
	uc := NewUpdateTransactionUseCase(
		repo, newFakeAccountRepo(oldAccount, newAccount), newFakeCategoryRepo(category), newFakeTagRepo(), invalidator)

	_, err := uc.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: transaction.ID,
		UserID:        userID,
		AccountID:     &newAccount.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	invalidated := invalidator.all()
	if !containsID(invalidated, oldAccount.ID) {
		t.Error("expected old account balance to be invalidated")
	}
	if !containsID(invalidated, newAccount.ID) {
		t.Error("expected new account balance to be invalidated")
	}
	if repo.byID[transaction.ID].AccountID != newAccount.ID {
		t.Error("expected transaction moved to the new account")
	}
}

func TestUpdateTransactionInPlaceInvalidatesSingleAccount(t *testing.T) {
	userID := uuid.New()
	account := entity.NewAccount(userID, "Main", entity.CurrencyUAH, entity.AccountTypeCard)
	category := entity.NewCategory(userID, "Food")

	repo := newFakeTransactionRepo()
	transaction := seedTransaction(repo, account.ID, category.ID)

	invalidator := &fakeInvalidator{}
	uc := NewUpdateTransactionUseCase(
		repo, newFakeAccountRepo(account), newFakeCategoryRepo(category), newFakeTagRepo(), invalidator)

	amount := decimal.RequireFromString("75.00")
	out, err := uc.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: transaction.ID,
		UserID:        userID,
		Amount:        &amount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Transaction.Amount.Equal(amount) {
		t.Errorf("expected amount updated to 75.00, got %s", out.Transaction.Amount)
	}
	if len(invalidator.invalidated) != 1 || len(invalidator.invalidated[0]) != 1 {
		t.Fatalf("expected exactly one account invalidated, got %v", invalidator.invalidated)
	}
	if invalidator.invalidated[0][0] != account.ID {
		t.Error("expected the owning account to be invalidated")
	}
}

func TestUpdateTransactionRejectsForeignUser(t *testing.T) {
	ownerID := uuid.New()
	account := entity.NewAccount(ownerID, "Main", entity.CurrencyUAH, entity.AccountTypeCard)
	category := entity.NewCategory(ownerID, "Food")

	repo := newFakeTransactionRepo()
	transaction := seedTransaction(repo, account.ID, category.ID)

	invalidator := &fakeInvalidator{}
	uc := NewUpdateTransactionUseCase(
		repo, newFakeAccountRepo(account), newFakeCategoryRepo(category), newFakeTagRepo(), invalidator)

	description := "hijacked"
	_, err := uc.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: transaction.ID,
		UserID:        uuid.New(),
		Description:   &description,
	})
	if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyTransaction) {
		t.Fatalf("expected ErrNotAuthorizedToModifyTransaction, got %v", err)
	}
	if len(repo.updated) != 0 {
		t.Error("nothing must be persisted for a foreign user")
	}
}

func TestUpdateTransactionNotFound(t *testing.T) {
	uc := NewUpdateTransactionUseCase(
		newFakeTransactionRepo(), newFakeAccountRepo(), newFakeCategoryRepo(), newFakeTagRepo(), &fakeInvalidator{})

	_, err := uc.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: uuid.New(),
		UserID:        uuid.New(),
	})
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestUpdateTransactionReplacesTagSet(t *testing.T) {
	userID := uuid.New()
	account := entity.NewAccount(userID, "Main", entity.CurrencyUAH, entity.AccountTypeCard)
	category := entity.NewCategory(userID, "Food")
	keep := entity.NewTag(userID, "keep", entity.DefaultTagColor)
	drop := entity.NewTag(userID, "drop", entity.DefaultTagColor)
	added := entity.NewTag(userID, "added", entity.DefaultTagColor)

	repo := newFakeTransactionRepo()
	transaction := seedTransaction(repo, account.ID, category.ID)

	tagRepo := newFakeTagRepo(keep, drop, added)
	tagRepo.byTransaction[transaction.ID] = []uuid.UUID{keep.ID, drop.ID}

	uc := NewUpdateTransactionUseCase(
		repo, newFakeAccountRepo(account), newFakeCategoryRepo(category), tagRepo, &fakeInvalidator{})

	desired := []uuid.UUID{keep.ID, added.ID}
	_, err := uc.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: transaction.ID,
		UserID:        userID,
		TagIDs:        &desired,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	linked := tagRepo.byTransaction[transaction.ID]
	if len(linked) != 2 || !containsID(linked, keep.ID) || !containsID(linked, added.ID) {
		t.Errorf("expected tag set replaced with keep+added, got %v", linked)
	}
	if !containsID(tagRepo.removed, drop.ID) {
		t.Error("expected dropped tag association removed")
	}
	if containsID(tagRepo.removed, keep.ID) {
		t.Error("unchanged tag must not be removed and re-added")
	}
}

func TestUpdateTransactionUnknownTagStillInvalidatesBalance(t *testing.T) {
	userID := uuid.New()
	account := entity.NewAccount(userID, "Main", entity.CurrencyUAH, entity.AccountTypeCard)
	category := entity.NewCategory(userID, "Food")

	repo := newFakeTransactionRepo()
	transaction := seedTransaction(repo, account.ID, category.ID)

	invalidator := &fakeInvalidator{}
	uc := NewUpdateTransactionUseCase(
		repo, newFakeAccountRepo(account), newFakeCategoryRepo(category), newFakeTagRepo(), invalidator)

	amount := decimal.RequireFromString("999.00")
	unknownTags := []uuid.UUID{uuid.New()}
	_, err := uc.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: transaction.ID,
		UserID:        userID,
		Amount:        &amount,
		TagIDs:        &unknownTags,
	})
	if !errors.Is(err, domainerror.ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}

	// The amount change is already committed when tag reconciliation
	// fails, so the cached balance must still be evicted.
	if len(repo.updated) != 1 || !repo.updated[0].Amount.Equal(amount) {
		t.Fatalf("expected the updated row persisted with 999.00, got %v", repo.updated)
	}
	if !containsID(invalidator.all(), account.ID) {
		t.Error("committed update must invalidate the account balance even when tag linking fails")
	}
}

func TestDeleteTransactionInvalidatesAccountBalance(t *testing.T) {
	userID := uuid.New()
	account := entity.NewAccount(userID, "Main", entity.CurrencyUAH, entity.AccountTypeCard)
	category := entity.NewCategory(userID, "Food")

	repo := newFakeTransactionRepo()
	transaction := seedTransaction(repo, account.ID, category.ID)

	invalidator := &fakeInvalidator{}
	uc := NewDeleteTransactionUseCase(repo, newFakeAccountRepo(account), invalidator)

	if err := uc.Execute(context.Background(), DeleteTransactionInput{
		TransactionID: transaction.ID,
		UserID:        userID,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.deleted) != 1 {
		t.Fatalf("expected 1 transaction deleted, got %d", len(repo.deleted))
	}
	if !containsID(invalidator.all(), account.ID) {
		t.Error("expected account balance invalidated after delete")
	}
}

func TestDeleteTransactionRejectsForeignUser(t *testing.T) {
	ownerID := uuid.New()
	account := entity.NewAccount(ownerID, "Main", entity.CurrencyUAH, entity.AccountTypeCard)
	category := entity.NewCategory(ownerID, "Food")

	repo := newFakeTransactionRepo()
	transaction := seedTransaction(repo, account.ID, category.ID)

	uc := NewDeleteTransactionUseCase(repo, newFakeAccountRepo(account), &fakeInvalidator{})

	err := uc.Execute(context.Background(), DeleteTransactionInput{
		TransactionID: transaction.ID,
		UserID:        uuid.New(),
	})
	if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyTransaction) {
		t.Fatalf("expected ErrNotAuthorizedToModifyTransaction, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Error("nothing must be deleted for a foreign user")
	}
}
