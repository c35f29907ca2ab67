package dto

import (
	"time"

	"github.com/fin-mate/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	AccountID   string   `json:"account_id" binding:"required,uuid"`
	CategoryID  string   `json:"category_id" binding:"required,uuid"`
	Amount      float64  `json:"amount" binding:"required"`
	Type        string   `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Date        string   `json:"date" binding:"required"`
	Description string   `json:"description,omitempty" binding:"omitempty,max=255"`
	TagIDs      []string `json:"tag_ids,omitempty" binding:"omitempty,dive,uuid"`
}

// UpdateTransactionRequest represents the request body for transaction
// update. Omitted fields are left unchanged; a present tag_ids replaces
// the tag set.
type UpdateTransactionRequest struct {
	AccountID   *string   `json:"account_id,omitempty" binding:"omitempty,uuid"`
	CategoryID  *string   `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Amount      *float64  `json:"amount,omitempty"`
	Type        *string   `json:"type,omitempty" binding:"omitempty,oneof=INCOME EXPENSE"`
	Date        *string   `json:"date,omitempty"`
	Description *string   `json:"description,omitempty" binding:"omitempty,max=255"`
	TagIDs      *[]string `json:"tag_ids,omitempty" binding:"omitempty,dive,uuid"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string            `json:"id"`
	AccountID   string            `json:"account_id"`
	CategoryID  string            `json:"category_id"`
	Amount      string            `json:"amount"`
	Type        string            `json:"type"`
	Date        string            `json:"date"`
	Description string            `json:"description"`
	Account     *AccountResponse  `json:"account,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Tags        []TagResponse     `json:"tags,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          transaction.ID.String(),
		AccountID:   transaction.AccountID.String(),
		CategoryID:  transaction.CategoryID.String(),
		Amount:      transaction.Amount.String(),
		Type:        string(transaction.Type),
		Date:        transaction.Date.Format("2006-01-02"),
		Description: transaction.Description,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
	}
}

// ToTransactionResponseWithRefs converts a TransactionWithRefs to a
// TransactionResponse DTO including account, category and tags.
func ToTransactionResponseWithRefs(transaction *entity.TransactionWithRefs) TransactionResponse {
	response := ToTransactionResponse(transaction.Transaction)

	if transaction.Account != nil {
		account := ToAccountResponse(transaction.Account)
		response.Account = &account
	}
	if transaction.Category != nil {
		category := ToCategoryResponse(transaction.Category)
		response.Category = &category
	}
	if len(transaction.Tags) > 0 {
		response.Tags = make([]TagResponse, len(transaction.Tags))
		for i, tag := range transaction.Tags {
			response.Tags[i] = ToTagResponse(tag)
		}
	}

	return response
}

// ToTransactionListResponse converts a list of TransactionWithRefs to a
// TransactionListResponse.
func ToTransactionListResponse(transactions []*entity.TransactionWithRefs) TransactionListResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		responses[i] = ToTransactionResponseWithRefs(transaction)
	}
	return TransactionListResponse{
		Transactions: responses,
	}
}
