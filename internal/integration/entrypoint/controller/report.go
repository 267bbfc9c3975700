// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/report"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles report endpoints.
type ReportController struct {
	monthlyUseCase *report.MonthlyReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(monthlyUseCase *report.MonthlyReportUseCase) *ReportController {
	return &ReportController{
		monthlyUseCase: monthlyUseCase,
	}
}

// Monthly handles GET /reports/monthly requests. Year and month arrive as
// required query parameters.
func (c *ReportController) Monthly(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Query parameter 'year' must be an integer",
			Code:  string(domainerror.ErrCodeInvalidReportYear),
		})
		return
	}

	month, err := strconv.Atoi(ctx.Query("month"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Query parameter 'month' must be an integer",
			Code:  string(domainerror.ErrCodeInvalidReportMonth),
		})
		return
	}

	input := report.MonthlyReportInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	}

	output, err := c.monthlyUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyReportResponse(output))
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var rptErr *domainerror.ReportError
	if errors.As(err, &rptErr) {
		statusCode := c.getStatusCodeForReportError(rptErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: rptErr.Message,
			Code:  string(rptErr.Code),
		})
		return
	}

	// Generic server error; the cause is logged, never exposed.
	slog.Error("Unhandled report error", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForReportError maps report error codes to HTTP status codes.
func (c *ReportController) getStatusCodeForReportError(code domainerror.ReportErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidReportMonth,
		domainerror.ErrCodeInvalidReportYear:
		return http.StatusBadRequest
	case domainerror.ErrCodeReportOwnerUnknown:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
