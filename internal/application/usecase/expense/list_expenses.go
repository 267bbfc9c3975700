// Package expense contains expense ledger use cases.
package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ListExpensesInput represents the input for listing expenses.
// CategoryName, when set, restricts the result to expenses whose category
// name matches exactly.
type ListExpensesInput struct {
	UserID       uuid.UUID
	CategoryName string
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses []*ExpenseOutput
}

// ListExpensesUseCase handles expense listing logic.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
	userRepo    adapter.UserRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(
	expenseRepo adapter.ExpenseRepository,
	userRepo adapter.UserRepository,
) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
	}
}

// Execute retrieves the caller's expenses in storage order.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	if _, err := resolveOwner(ctx, uc.userRepo, input.UserID); err != nil {
		return nil, err
	}

	var (
		records []*entity.ExpenseWithCategory
		err     error
	)
	if input.CategoryName != "" {
		records, err = uc.expenseRepo.FindByUserAndCategoryName(ctx, input.UserID, input.CategoryName)
	} else {
		records, err = uc.expenseRepo.FindByUser(ctx, input.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	expenses := make([]*ExpenseOutput, len(records))
	for i, rec := range records {
		var categoryName string
		if rec.Category != nil {
			categoryName = rec.Category.Name
		}
		expenses[i] = toExpenseOutput(rec.Expense, categoryName)
	}

	return &ListExpensesOutput{
		Expenses: expenses,
	}, nil
}
