// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// fakeCategoryRepo keeps the catalog in memory and enforces the unique
// name constraint the way the real repository does.
type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if _, ok := f.categories[category.Name]; ok {
		return domainerror.ErrCategoryNameExists
	}
	f.categories[category.Name] = category
	return nil
}

func (f *fakeCategoryRepo) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	if cat, ok := f.categories[name]; ok {
		return cat, nil
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	result := make([]*entity.Category, 0, len(f.categories))
	for _, cat := range f.categories {
		result = append(result, cat)
	}
	return result, nil
}

func (f *fakeCategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, ok := f.categories[name]
	return ok, nil
}

// racingCategoryRepo reports no duplicate on the existence pre-check but
// fails the insert, simulating a concurrent create winning the race.
type racingCategoryRepo struct {
	*fakeCategoryRepo
}

func (f *racingCategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	return false, nil
}

func (f *racingCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	return domainerror.ErrCategoryNameExists
}

func TestCreateCategoryUseCase_Execute(t *testing.T) {
	t.Run("creates a category", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		uc := NewCreateCategoryUseCase(repo)

		output, err := uc.Execute(context.Background(), CreateCategoryInput{Name: "Food"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Category.Name != "Food" {
			t.Errorf("expected name Food, got %s", output.Category.Name)
		}
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(newFakeCategoryRepo())

		for _, name := range []string{"", "   "} {
			_, err := uc.Execute(context.Background(), CreateCategoryInput{Name: name})
			if !errors.Is(err, domainerror.ErrCategoryNameBlank) {
				t.Errorf("name %q: expected ErrCategoryNameBlank, got %v", name, err)
			}
		}
	})

	t.Run("rejects a name over the length limit", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(newFakeCategoryRepo())

		_, err := uc.Execute(context.Background(), CreateCategoryInput{
			Name: strings.Repeat("x", MaxCategoryNameLength+1),
		})
		if !errors.Is(err, domainerror.ErrCategoryNameTooLong) {
			t.Errorf("expected ErrCategoryNameTooLong, got %v", err)
		}
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		uc := NewCreateCategoryUseCase(repo)

		if _, err := uc.Execute(context.Background(), CreateCategoryInput{Name: "Food"}); err != nil {
			t.Fatalf("first create failed: %v", err)
		}

		_, err := uc.Execute(context.Background(), CreateCategoryInput{Name: "Food"})
		var catErr *domainerror.CategoryError
		if !errors.As(err, &catErr) {
			t.Fatalf("expected CategoryError, got %v", err)
		}
		if catErr.Code != domainerror.ErrCodeCategoryNameExists {
			t.Errorf("expected conflict code, got %s", catErr.Code)
		}
		if catErr.Message != "Category already exists: Food" {
			t.Errorf("unexpected message: %q", catErr.Message)
		}
	})

	t.Run("case differences are distinct names", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		uc := NewCreateCategoryUseCase(repo)

		if _, err := uc.Execute(context.Background(), CreateCategoryInput{Name: "Food"}); err != nil {
			t.Fatalf("first create failed: %v", err)
		}
		if _, err := uc.Execute(context.Background(), CreateCategoryInput{Name: "food"}); err != nil {
			t.Errorf("lowercase variant should be a distinct category, got %v", err)
		}
	})

	t.Run("losing a creation race still conflicts", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(&racingCategoryRepo{newFakeCategoryRepo()})

		_, err := uc.Execute(context.Background(), CreateCategoryInput{Name: "Food"})
		var catErr *domainerror.CategoryError
		if !errors.As(err, &catErr) {
			t.Fatalf("expected CategoryError, got %v", err)
		}
		if catErr.Code != domainerror.ErrCodeCategoryNameExists {
			t.Errorf("expected conflict code, got %s", catErr.Code)
		}
	})
}
