// Package report contains the monthly spending report use case.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// AlertThreshold is the per-category monthly spending limit. A category
// whose monthly total strictly exceeds it produces one alert; a total of
// exactly the threshold does not.
var AlertThreshold = decimal.NewFromInt(2000)

// MonthlyReportInput represents the input for monthly report generation.
type MonthlyReportInput struct {
	UserID uuid.UUID
	Year   int
	Month  int
}

// MonthlyReportOutput represents the generated report. Amounts are exact
// decimals; SpendingByCategory has one entry per category that had at
// least one expense in the month. Alerts are ordered by category name.
type MonthlyReportOutput struct {
	Year               int
	Month              int
	TotalAmount        decimal.Decimal
	ExpenseCount       int
	SpendingByCategory map[string]decimal.Decimal
	Alerts             []string
}

// MonthlyReportUseCase handles monthly report generation logic.
type MonthlyReportUseCase struct {
	expenseRepo adapter.ExpenseRepository
	userRepo    adapter.UserRepository
	cache       adapter.ReportCache
}

// NewMonthlyReportUseCase creates a new MonthlyReportUseCase instance.
// The cache may be nil, in which case every report is computed fresh.
func NewMonthlyReportUseCase(
	expenseRepo adapter.ExpenseRepository,
	userRepo adapter.UserRepository,
	cache adapter.ReportCache,
) *MonthlyReportUseCase {
	return &MonthlyReportUseCase{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		cache:       cache,
	}
}

// Execute aggregates the caller's expenses for the given calendar month.
// The sums are computed in Go with decimal arithmetic rather than pushed
// into SQL, so the totals are exact regardless of the storage backend. A
// month with no expenses yields a zero total, an empty category map and no
// alerts.
func (uc *MonthlyReportUseCase) Execute(ctx context.Context, input MonthlyReportInput) (*MonthlyReportOutput, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportMonth,
			fmt.Sprintf("invalid month: %d", input.Month),
			domainerror.ErrInvalidReportMonth,
		)
	}
	if input.Year < 1 {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportYear,
			fmt.Sprintf("invalid year: %d", input.Year),
			domainerror.ErrInvalidReportYear,
		)
	}

	if _, err := uc.userRepo.FindByID(ctx, input.UserID); err != nil {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeReportOwnerUnknown,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}

	if cached := uc.fromCache(ctx, input); cached != nil {
		return cached, nil
	}

	records, err := uc.expenseRepo.FindByUserAndMonth(ctx, input.UserID, input.Year, input.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses for report: %w", err)
	}

	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, rec := range records {
		total = total.Add(rec.Expense.Amount)

		var name string
		if rec.Category != nil {
			name = rec.Category.Name
		}
		byCategory[name] = byCategory[name].Add(rec.Expense.Amount)
	}

	alerts := buildAlerts(byCategory)

	output := &MonthlyReportOutput{
		Year:               input.Year,
		Month:              input.Month,
		TotalAmount:        total,
		ExpenseCount:       len(records),
		SpendingByCategory: byCategory,
		Alerts:             alerts,
	}
	uc.toCache(ctx, input, output)

	return output, nil
}

// fromCache returns a previously computed report, or nil on any miss or
// cache failure. Cache trouble is logged and never fails the request.
func (uc *MonthlyReportUseCase) fromCache(ctx context.Context, input MonthlyReportInput) *MonthlyReportOutput {
	if uc.cache == nil {
		return nil
	}

	payload, found, err := uc.cache.GetMonthlyReport(ctx, input.UserID, input.Year, input.Month)
	if err != nil {
		slog.Warn("Report cache read failed", "error", err)
		return nil
	}
	if !found {
		return nil
	}

	var output MonthlyReportOutput
	if err := json.Unmarshal(payload, &output); err != nil {
		slog.Warn("Discarding undecodable cached report", "error", err)
		return nil
	}
	return &output
}

func (uc *MonthlyReportUseCase) toCache(ctx context.Context, input MonthlyReportInput, output *MonthlyReportOutput) {
	if uc.cache == nil {
		return
	}

	payload, err := json.Marshal(output)
	if err != nil {
		slog.Warn("Failed to encode report for caching", "error", err)
		return
	}
	if err := uc.cache.SetMonthlyReport(ctx, input.UserID, input.Year, input.Month, payload); err != nil {
		slog.Warn("Report cache write failed", "error", err)
	}
}

// buildAlerts emits one alert per category whose total strictly exceeds
// the threshold, sorted by category name so repeated report runs produce
// identical output.
func buildAlerts(byCategory map[string]decimal.Decimal) []string {
	names := make([]string, 0, len(byCategory))
	for name, amount := range byCategory {
		if amount.GreaterThan(AlertThreshold) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	alerts := make([]string, 0, len(names))
	for _, name := range names {
		alerts = append(alerts, fmt.Sprintf("High spending in %s: %s", name, byCategory[name].StringFixed(2)))
	}
	return alerts
}
