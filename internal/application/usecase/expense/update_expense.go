// Package expense contains expense ledger use cases.
package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// UpdateExpenseInput represents the input for expense update. Only the
// non-nil fields are applied; everything else keeps its prior value. The
// owner and identity of an expense are never updatable.
type UpdateExpenseInput struct {
	ExpenseID    uuid.UUID
	UserID       uuid.UUID
	Amount       *decimal.Decimal
	Date         *time.Time
	Description  *string
	CategoryName *string
}

// UpdateExpenseOutput represents the output of expense update.
type UpdateExpenseOutput struct {
	Expense *ExpenseOutput
}

// UpdateExpenseUseCase handles expense update logic.
type UpdateExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	userRepo     adapter.UserRepository
	categoryRepo adapter.CategoryRepository
	reportCache  adapter.ReportCache
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
// The report cache may be nil.
func NewUpdateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	userRepo adapter.UserRepository,
	categoryRepo adapter.CategoryRepository,
	reportCache adapter.ReportCache,
) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo:  expenseRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		reportCache:  reportCache,
	}
}

// Execute performs the expense update. The lookup predicate is
// (id AND owner), so an expense belonging to another user yields the same
// not-found error as a nonexistent one.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	if _, err := resolveOwner(ctx, uc.userRepo, input.UserID); err != nil {
		return nil, err
	}

	record, err := uc.expenseRepo.FindByIDAndUser(ctx, input.ExpenseID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, notFoundError(input.ExpenseID)
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	exp := record.Expense
	category := record.Category

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewValidationError(map[string]string{
				"amount": "must be positive",
			})
		}
		exp.Amount = *input.Amount
	}

	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, domainerror.NewValidationError(map[string]string{
				"date": "is required",
			})
		}
		exp.Date = entity.NormalizeDate(*input.Date)
	}

	if input.Description != nil {
		if len(*input.Description) > MaxDescriptionLength {
			return nil, domainerror.NewValidationError(map[string]string{
				"description": fmt.Sprintf("must not exceed %d characters", MaxDescriptionLength),
			})
		}
		exp.Description = *input.Description
	}

	if input.CategoryName != nil {
		cat, err := uc.categoryRepo.FindByName(ctx, *input.CategoryName)
		if err != nil {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpCategoryNotFound,
				fmt.Sprintf("Category not found: %s", *input.CategoryName),
				domainerror.ErrCategoryNotFound,
			)
		}
		exp.CategoryID = cat.ID
		category = cat
	}

	exp.UpdatedAt = time.Now().UTC()

	if err := uc.expenseRepo.Update(ctx, exp); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	invalidateReports(ctx, uc.reportCache, input.UserID)

	var categoryName string
	if category != nil {
		categoryName = category.Name
	}

	return &UpdateExpenseOutput{
		Expense: toExpenseOutput(exp, categoryName),
	}, nil
}

func notFoundError(id uuid.UUID) *domainerror.ExpenseError {
	return domainerror.NewExpenseError(
		domainerror.ErrCodeExpenseNotFound,
		fmt.Sprintf("Expense not found: %s", id),
		domainerror.ErrExpenseNotFound,
	)
}
