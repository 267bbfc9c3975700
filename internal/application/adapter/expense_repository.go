// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense persistence operations.
// Every lookup is scoped by owner so that another user's expense is
// indistinguishable from a nonexistent one.
type ExpenseRepository interface {
	// Create creates a new expense in the database.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByIDAndUser retrieves an expense with its category by ID scoped
	// to its owner, or ErrExpenseNotFound.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.ExpenseWithCategory, error)

	// FindByUser retrieves all expenses owned by the user with their
	// categories, in storage order.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.ExpenseWithCategory, error)

	// FindByUserAndCategoryName retrieves the owned subset whose category
	// name matches exactly.
	FindByUserAndCategoryName(ctx context.Context, userID uuid.UUID, categoryName string) ([]*entity.ExpenseWithCategory, error)

	// FindByUserAndMonth retrieves the owned expenses whose date falls in
	// the given calendar month.
	FindByUserAndMonth(ctx context.Context, userID uuid.UUID, year, month int) ([]*entity.ExpenseWithCategory, error)

	// Update updates an existing expense in the database.
	Update(ctx context.Context, expense *entity.Expense) error

	// DeleteByIDAndUser hard-deletes an expense scoped to its owner and
	// reports the number of rows removed.
	DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) (int64, error)
}
