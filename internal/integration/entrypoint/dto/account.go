package dto

import (
	"time"

	"github.com/fin-mate/backend/internal/domain/entity"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Currency string `json:"currency" binding:"required,oneof=UAH USD EUR"`
	Type     string `json:"type" binding:"required,oneof=CASH CARD DEPOSIT CRYPTO"`
}

// UpdateAccountRequest represents the request body for account update.
// The currency is fixed at creation and cannot be changed.
type UpdateAccountRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Type *string `json:"type,omitempty" binding:"omitempty,oneof=CASH CARD DEPOSIT CRYPTO"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Type      string    `json:"type"`
	Balance   string    `json:"balance,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain Account entity to an AccountResponse DTO.
func ToAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID.String(),
		Name:      account.Name,
		Currency:  string(account.Currency),
		Type:      string(account.Type),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// ToAccountListResponse converts accounts with balances to an AccountListResponse.
func ToAccountListResponse(accounts []*entity.AccountWithBalance) AccountListResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		responses[i] = ToAccountResponse(account.Account)
		responses[i].Balance = account.Balance.String()
	}
	return AccountListResponse{
		Accounts: responses,
	}
}
