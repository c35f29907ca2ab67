// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency represents an ISO-like 3-letter currency code supported by accounts.
type Currency string

const (
	CurrencyUAH Currency = "UAH"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// AccountType represents the kind of account.
type AccountType string

const (
	AccountTypeCash    AccountType = "CASH"
	AccountTypeCard    AccountType = "CARD"
	AccountTypeDeposit AccountType = "DEPOSIT"
	AccountTypeCrypto  AccountType = "CRYPTO"
)

// Account represents a money account owned by a user.
// The balance is never stored: it is always derived from the account's
// transactions, optionally through the balance cache.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Currency  Currency
	Type      AccountType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount creates a new Account entity.
func NewAccount(userID uuid.UUID, name string, currency Currency, accountType AccountType) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Currency:  currency,
		Type:      accountType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AccountWithBalance pairs an account with its derived balance.
type AccountWithBalance struct {
	Account *Account
	Balance decimal.Decimal
}
