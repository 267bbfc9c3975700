// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/expense-tracker/backend/internal/application/usecase/report"
)

// MonthlyReportResponse represents the response for the monthly report
// endpoint. Amounts are formatted with two decimal places.
type MonthlyReportResponse struct {
	Year               int               `json:"year"`
	Month              int               `json:"month"`
	TotalAmount        string            `json:"total_amount"`
	ExpenseCount       int               `json:"expense_count"`
	SpendingByCategory map[string]string `json:"spending_by_category"`
	Alerts             []string          `json:"alerts"`
}

// ToMonthlyReportResponse converts a MonthlyReportOutput to a MonthlyReportResponse DTO.
func ToMonthlyReportResponse(output *report.MonthlyReportOutput) MonthlyReportResponse {
	spending := make(map[string]string, len(output.SpendingByCategory))
	for name, amount := range output.SpendingByCategory {
		spending[name] = amount.StringFixed(2)
	}

	alerts := output.Alerts
	if alerts == nil {
		alerts = []string{}
	}

	return MonthlyReportResponse{
		Year:               output.Year,
		Month:              output.Month,
		TotalAmount:        output.TotalAmount.StringFixed(2),
		ExpenseCount:       output.ExpenseCount,
		SpendingByCategory: spending,
		Alerts:             alerts,
	}
}
