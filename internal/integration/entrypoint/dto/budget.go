package dto

import (
	"time"

	"github.com/fin-mate/backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	CategoryID string  `json:"category_id" binding:"required,uuid"`
	Limit      float64 `json:"limit" binding:"required"`
	Period     string  `json:"period" binding:"required"`
	Notes      string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	Limit *float64 `json:"limit,omitempty"`
	Notes *string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// CopyBudgetsRequest represents the request body for copying last month's
// budgets into a target month.
type CopyBudgetsRequest struct {
	Period string `json:"period" binding:"required"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID         string            `json:"id"`
	CategoryID string            `json:"category_id"`
	Category   *CategoryResponse `json:"category,omitempty"`
	Limit      string            `json:"limit"`
	Period     string            `json:"period"`
	Notes      string            `json:"notes"`
	Spent      string            `json:"spent,omitempty"`
	Progress   float64           `json:"progress,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
	Period  string           `json:"period"`
}

// CopyBudgetsResponse represents the response for a budget copy.
type CopyBudgetsResponse struct {
	Created int64  `json:"created"`
	Target  string `json:"target"`
	Source  string `json:"source"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(budget *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:         budget.ID.String(),
		CategoryID: budget.CategoryID.String(),
		Limit:      budget.Limit.String(),
		Period:     budget.Period.Format("2006-01"),
		Notes:      budget.Notes,
		CreatedAt:  budget.CreatedAt,
		UpdatedAt:  budget.UpdatedAt,
	}
}

// ToBudgetProgressResponse converts a BudgetProgress to a BudgetResponse
// DTO including the spent amount and progress percentage.
func ToBudgetProgressResponse(progress *entity.BudgetProgress) BudgetResponse {
	response := ToBudgetResponse(progress.Budget)

	if progress.Category != nil {
		category := ToCategoryResponse(progress.Category)
		response.Category = &category
	}
	response.Spent = progress.Spent.String()
	response.Progress = progress.Progress

	return response
}

// ToBudgetListResponse converts budget progress entries to a BudgetListResponse.
func ToBudgetListResponse(budgets []*entity.BudgetProgress, period time.Time) BudgetListResponse {
	responses := make([]BudgetResponse, len(budgets))
	for i, budget := range budgets {
		responses[i] = ToBudgetProgressResponse(budget)
	}
	return BudgetListResponse{
		Budgets: responses,
		Period:  period.Format("2006-01"),
	}
}
