// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents a single expense record owned by exactly one user.
// Amount is a positive decimal; Date is a calendar day (the time component
// is normalized to midnight UTC and carries no meaning). The owner is fixed
// at creation and never changes.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(userID, categoryID uuid.UUID, amount decimal.Decimal, date time.Time, description string) *Expense {
	now := time.Now().UTC()
	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Date:        NormalizeDate(date),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NormalizeDate truncates a timestamp to its calendar day in UTC.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ExpenseWithCategory pairs an expense with its category so callers can
// denormalize the category name into response views.
type ExpenseWithCategory struct {
	Expense  *Expense
	Category *Category
}
