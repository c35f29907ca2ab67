package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fin-mate/backend/internal/application/usecase/dashboard"
	domainerror "github.com/fin-mate/backend/internal/domain/error"
	"github.com/fin-mate/backend/internal/domain/period"
	"github.com/fin-mate/backend/internal/integration/entrypoint/dto"
	"github.com/fin-mate/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	monthSummaryUseCase *dashboard.MonthSummaryUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(monthSummaryUseCase *dashboard.MonthSummaryUseCase) *DashboardController {
	return &DashboardController{
		monthSummaryUseCase: monthSummaryUseCase,
	}
}

// Summary handles GET /dashboard requests. The optional period query
// parameter selects the month in YYYY-MM form; it defaults to the current
// month.
func (c *DashboardController) Summary(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Resolve the requested month
	month := period.ParsePeriodOrToday(ctx.Query("period"))
	start, end := period.MonthRange(month)

	// Execute use case
	output, err := c.monthSummaryUseCase.Execute(ctx.Request.Context(), dashboard.MonthSummaryInput{
		UserID: userID,
		Start:  start,
		End:    end,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	// Build response
	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output))
}

// handleDashboardError handles dashboard errors and returns appropriate HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		statusCode := http.StatusInternalServerError
		if dashErr.Code == domainerror.ErrCodeInvalidDateRange {
			statusCode = http.StatusBadRequest
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
