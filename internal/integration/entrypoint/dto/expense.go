// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
)

// DateLayout is the wire format for expense dates.
const DateLayout = "2006-01-02"

// CreateExpenseRequest represents the request body for expense creation.
// Amount travels as a string so decimal values are never rounded through
// a float.
type CreateExpenseRequest struct {
	Amount       string `json:"amount" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Description  string `json:"description,omitempty" binding:"omitempty,max=255"`
	CategoryName string `json:"category_name" binding:"required,min=1,max=50"`
}

// UpdateExpenseRequest represents the request body for expense update.
// Absent fields keep their stored values.
type UpdateExpenseRequest struct {
	Amount       *string `json:"amount,omitempty"`
	Date         *string `json:"date,omitempty"`
	Description  *string `json:"description,omitempty" binding:"omitempty,max=255"`
	CategoryName *string `json:"category_name,omitempty" binding:"omitempty,min=1,max=50"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID           string    `json:"id"`
	Amount       string    `json:"amount"`
	Date         string    `json:"date"`
	Description  string    `json:"description,omitempty"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToExpenseResponse converts an ExpenseOutput to an ExpenseResponse DTO.
func ToExpenseResponse(output *expense.ExpenseOutput) ExpenseResponse {
	return ExpenseResponse{
		ID:           output.ID.String(),
		Amount:       output.Amount.StringFixed(2),
		Date:         output.Date.Format(DateLayout),
		Description:  output.Description,
		CategoryName: output.CategoryName,
		CreatedAt:    output.CreatedAt,
		UpdatedAt:    output.UpdatedAt,
	}
}

// ToExpenseListResponse converts a list of ExpenseOutput to ExpenseListResponse.
func ToExpenseListResponse(outputs []*expense.ExpenseOutput) ExpenseListResponse {
	expenses := make([]ExpenseResponse, len(outputs))
	for i, output := range outputs {
		expenses[i] = ToExpenseResponse(output)
	}
	return ExpenseListResponse{
		Expenses: expenses,
	}
}
