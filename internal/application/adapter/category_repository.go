// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
// The catalog is global; names are unique across all users.
type CategoryRepository interface {
	// Create creates a new category. A duplicate name surfaces as
	// ErrCategoryNameExists, including when two concurrent creates race on
	// the store's uniqueness constraint.
	Create(ctx context.Context, category *entity.Category) error

	// FindByName retrieves a category by its exact name, or ErrCategoryNotFound.
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// FindAll retrieves all categories ordered by name.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// ExistsByName checks if a category with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)
}
