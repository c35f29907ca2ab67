package dto

import (
	"github.com/shopspring/decimal"

	"github.com/fin-mate/backend/internal/application/usecase/dashboard"
)

// DashboardAccountResponse represents an account on the dashboard with
// its native balance and the balance in the base currency.
type DashboardAccountResponse struct {
	AccountResponse
	BaseBalance string `json:"base_balance"`
}

// TopCategoryResponse represents a top-spending category entry.
type TopCategoryResponse struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Total      string  `json:"total"`
	Percent    float64 `json:"percent"`
}

// DashboardResponse represents the full month dashboard snapshot.
type DashboardResponse struct {
	Accounts      []DashboardAccountResponse `json:"accounts"`
	BaseTotal     string                     `json:"base_total"`
	Income        string                     `json:"income"`
	Expenses      string                     `json:"expenses"`
	Net           string                     `json:"net"`
	TopCategories []TopCategoryResponse      `json:"top_categories"`
	Budgets       []BudgetResponse           `json:"budgets"`
	Recent        []TransactionResponse      `json:"recent_transactions"`
	Rates         map[string]string          `json:"rates"`
}

// ToDashboardResponse converts a MonthSummaryOutput to a DashboardResponse DTO.
func ToDashboardResponse(output *dashboard.MonthSummaryOutput) DashboardResponse {
	accounts := make([]DashboardAccountResponse, len(output.Accounts))
	for i, account := range output.Accounts {
		response := ToAccountResponse(account.Account)
		response.Balance = account.Balance.String()
		accounts[i] = DashboardAccountResponse{
			AccountResponse: response,
			BaseBalance:     account.BaseBalance.String(),
		}
	}

	topCategories := make([]TopCategoryResponse, len(output.TopCategories))
	for i, category := range output.TopCategories {
		topCategories[i] = TopCategoryResponse{
			CategoryID: category.CategoryID.String(),
			Name:       category.Name,
			Total:      category.Total.String(),
			Percent:    category.Percent,
		}
	}

	budgets := make([]BudgetResponse, len(output.Budgets))
	for i, budget := range output.Budgets {
		budgets[i] = ToBudgetProgressResponse(budget)
	}

	recent := make([]TransactionResponse, len(output.Recent))
	for i, transaction := range output.Recent {
		recent[i] = ToTransactionResponseWithRefs(transaction)
	}

	return DashboardResponse{
		Accounts:      accounts,
		BaseTotal:     output.BaseTotal.String(),
		Income:        output.Income.String(),
		Expenses:      output.Expenses.String(),
		Net:           output.Net.String(),
		TopCategories: topCategories,
		Budgets:       budgets,
		Recent:        recent,
		Rates:         ratesToStrings(output.Rates),
	}
}

func ratesToStrings(rates map[string]decimal.Decimal) map[string]string {
	result := make(map[string]string, len(rates))
	for code, rate := range rates {
		result[code] = rate.String()
	}
	return result
}
