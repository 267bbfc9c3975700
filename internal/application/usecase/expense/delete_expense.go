// Package expense contains expense ledger use cases.
package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// DeleteExpenseInput represents the input for expense deletion.
type DeleteExpenseInput struct {
	ExpenseID uuid.UUID
	UserID    uuid.UUID
}

// DeleteExpenseOutput represents the output of expense deletion.
type DeleteExpenseOutput struct{}

// DeleteExpenseUseCase handles expense deletion logic.
type DeleteExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	userRepo    adapter.UserRepository
	reportCache adapter.ReportCache
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
// The report cache may be nil.
func NewDeleteExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	userRepo adapter.UserRepository,
	reportCache adapter.ReportCache,
) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		reportCache: reportCache,
	}
}

// Execute performs a hard delete scoped by (id AND owner). Zero rows
// removed means the expense does not exist for this caller, whether it is
// absent or owned by someone else.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) (*DeleteExpenseOutput, error) {
	if _, err := resolveOwner(ctx, uc.userRepo, input.UserID); err != nil {
		return nil, err
	}

	deleted, err := uc.expenseRepo.DeleteByIDAndUser(ctx, input.ExpenseID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete expense: %w", err)
	}
	if deleted == 0 {
		return nil, notFoundError(input.ExpenseID)
	}

	invalidateReports(ctx, uc.reportCache, input.UserID)

	return &DeleteExpenseOutput{}, nil
}
