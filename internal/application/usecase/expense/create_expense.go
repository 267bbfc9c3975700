// Package expense contains expense ledger use cases.
package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for expense descriptions.
const MaxDescriptionLength = 255

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	UserID       uuid.UUID
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
	CategoryName string
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *ExpenseOutput
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	userRepo     adapter.UserRepository
	categoryRepo adapter.CategoryRepository
	reportCache  adapter.ReportCache
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
// The report cache may be nil.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	userRepo adapter.UserRepository,
	categoryRepo adapter.CategoryRepository,
	reportCache adapter.ReportCache,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo:  expenseRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		reportCache:  reportCache,
	}
}

// Execute performs the expense creation. The HTTP layer pre-validates the
// request, but amount positivity and date presence are re-checked here as a
// last line of defense.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	fields := map[string]string{}
	if !input.Amount.IsPositive() {
		fields["amount"] = "must be positive"
	}
	if input.Date.IsZero() {
		fields["date"] = "is required"
	}
	if strings.TrimSpace(input.CategoryName) == "" {
		fields["categoryName"] = "cannot be blank"
	}
	if len(input.Description) > MaxDescriptionLength {
		fields["description"] = fmt.Sprintf("must not exceed %d characters", MaxDescriptionLength)
	}
	if len(fields) > 0 {
		return nil, domainerror.NewValidationError(fields)
	}

	user, err := resolveOwner(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.FindByName(ctx, input.CategoryName)
	if err != nil {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeExpCategoryNotFound,
			fmt.Sprintf("Category not found: %s", input.CategoryName),
			domainerror.ErrCategoryNotFound,
		)
	}

	exp := entity.NewExpense(user.ID, category.ID, input.Amount, input.Date, input.Description)

	if err := uc.expenseRepo.Create(ctx, exp); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	invalidateReports(ctx, uc.reportCache, user.ID)

	return &CreateExpenseOutput{
		Expense: toExpenseOutput(exp, category.Name),
	}, nil
}
