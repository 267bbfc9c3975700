// Package expense contains expense ledger use cases.
package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ExpenseOutput is the ledger's response view. The category name is
// denormalized so callers never see the raw category reference.
type ExpenseOutput struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
	CategoryName string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func toExpenseOutput(exp *entity.Expense, categoryName string) *ExpenseOutput {
	return &ExpenseOutput{
		ID:           exp.ID,
		UserID:       exp.UserID,
		Amount:       exp.Amount,
		Date:         exp.Date,
		Description:  exp.Description,
		CategoryName: categoryName,
		CreatedAt:    exp.CreatedAt,
		UpdatedAt:    exp.UpdatedAt,
	}
}

// invalidateReports drops the user's cached monthly reports after a
// ledger write. Cache trouble is logged, never surfaced, since the next
// report run simply recomputes.
func invalidateReports(ctx context.Context, cache adapter.ReportCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateUserReports(ctx, userID); err != nil {
		slog.Warn("Report cache invalidation failed", "user_id", userID, "error", err)
	}
}

// resolveOwner maps the already-authenticated user ID to its User record.
// A miss means the auth layer and the user store disagree, which is
// reported as not-found rather than as an internal failure.
func resolveOwner(ctx context.Context, userRepo adapter.UserRepository, userID uuid.UUID) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeExpenseOwnerNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}
	return user, nil
}
