// Package error defines domain-specific errors for the fin-mate application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrNotAuthorizedToModifyBudget is returned when user is not authorized to modify a budget.
	ErrNotAuthorizedToModifyBudget = errors.New("not authorized to modify budget")

	// ErrBudgetAlreadyExists is returned when a budget for the same category and period already exists.
	ErrBudgetAlreadyExists = errors.New("budget already exists for this category and period")

	// ErrInvalidBudgetLimit is returned when the budget limit is not positive.
	ErrInvalidBudgetLimit = errors.New("budget limit must be positive")

	// ErrCategoryNotFoundForBudget is returned when the referenced category is not found.
	ErrCategoryNotFoundForBudget = errors.New("category not found")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetNotFound         BudgetErrorCode = "BDG-010001"
	ErrCodeNotAuthorizedBudget    BudgetErrorCode = "BDG-010002"
	ErrCodeBudgetAlreadyExists    BudgetErrorCode = "BDG-010003"
	ErrCodeInvalidBudgetLimit     BudgetErrorCode = "BDG-010004"
	ErrCodeBudgetCategoryNotFound BudgetErrorCode = "BDG-010005"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
