// Package expense contains expense ledger use cases.
package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// fakeUserRepo serves a fixed set of users.
type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return false, nil
}

// fakeCategoryRepo serves a fixed catalog keyed by name.
type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
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
	return nil, nil
}

func (f *fakeCategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, ok := f.categories[name]
	return ok, nil
}

// fakeExpenseRepo keeps expenses in memory with owner-scoped lookups, the
// same contract the real repository implements.
type fakeExpenseRepo struct {
	expenses   map[uuid.UUID]*entity.Expense
	categories *fakeCategoryRepo
}

func newFakeExpenseRepo(categories *fakeCategoryRepo) *fakeExpenseRepo {
	return &fakeExpenseRepo{
		expenses:   make(map[uuid.UUID]*entity.Expense),
		categories: categories,
	}
}

func (f *fakeExpenseRepo) categoryByID(id uuid.UUID) *entity.Category {
	for _, cat := range f.categories.categories {
		if cat.ID == id {
			return cat
		}
	}
	return nil
}

func (f *fakeExpenseRepo) Create(ctx context.Context, expense *entity.Expense) error {
	f.expenses[expense.ID] = expense
	return nil
}

func (f *fakeExpenseRepo) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.ExpenseWithCategory, error) {
	exp, ok := f.expenses[id]
	if !ok || exp.UserID != userID {
		return nil, domainerror.ErrExpenseNotFound
	}
	return &entity.ExpenseWithCategory{Expense: exp, Category: f.categoryByID(exp.CategoryID)}, nil
}

func (f *fakeExpenseRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.ExpenseWithCategory, error) {
	var result []*entity.ExpenseWithCategory
	for _, exp := range f.expenses {
		if exp.UserID == userID {
			result = append(result, &entity.ExpenseWithCategory{Expense: exp, Category: f.categoryByID(exp.CategoryID)})
		}
	}
	return result, nil
}

func (f *fakeExpenseRepo) FindByUserAndCategoryName(ctx context.Context, userID uuid.UUID, categoryName string) ([]*entity.ExpenseWithCategory, error) {
	cat, ok := f.categories.categories[categoryName]
	if !ok {
		return nil, nil
	}
	var result []*entity.ExpenseWithCategory
	for _, exp := range f.expenses {
		if exp.UserID == userID && exp.CategoryID == cat.ID {
			result = append(result, &entity.ExpenseWithCategory{Expense: exp, Category: cat})
		}
	}
	return result, nil
}

func (f *fakeExpenseRepo) FindByUserAndMonth(ctx context.Context, userID uuid.UUID, year, month int) ([]*entity.ExpenseWithCategory, error) {
	var result []*entity.ExpenseWithCategory
	for _, exp := range f.expenses {
		if exp.UserID == userID && exp.Date.Year() == year && int(exp.Date.Month()) == month {
			result = append(result, &entity.ExpenseWithCategory{Expense: exp, Category: f.categoryByID(exp.CategoryID)})
		}
	}
	return result, nil
}

func (f *fakeExpenseRepo) Update(ctx context.Context, expense *entity.Expense) error {
	f.expenses[expense.ID] = expense
	return nil
}

func (f *fakeExpenseRepo) DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	exp, ok := f.expenses[id]
	if !ok || exp.UserID != userID {
		return 0, nil
	}
	delete(f.expenses, id)
	return 1, nil
}

type fixture struct {
	userID      uuid.UUID
	otherUserID uuid.UUID
	userRepo    *fakeUserRepo
	catRepo     *fakeCategoryRepo
	expRepo     *fakeExpenseRepo
}

func newFixture() *fixture {
	alice := entity.NewUser("alice", "hash")
	bob := entity.NewUser("bob", "hash")
	userID := alice.ID
	otherUserID := bob.ID
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{
		userID:      alice,
		otherUserID: bob,
	}}
	catRepo := &fakeCategoryRepo{categories: map[string]*entity.Category{
		"Food":   entity.NewCategory("Food"),
		"Travel": entity.NewCategory("Travel"),
	}}
	return &fixture{
		userID:      userID,
		otherUserID: otherUserID,
		userRepo:    userRepo,
		catRepo:     catRepo,
		expRepo:     newFakeExpenseRepo(catRepo),
	}
}

func mustDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func (fx *fixture) createExpense(t *testing.T, amount, date, categoryName string) *ExpenseOutput {
	t.Helper()
	uc := NewCreateExpenseUseCase(fx.expRepo, fx.userRepo, fx.catRepo, nil)
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("bad amount %q: %v", amount, err)
	}
	output, err := uc.Execute(context.Background(), CreateExpenseInput{
		UserID:       fx.userID,
		Amount:       amt,
		Date:         mustDate(date),
		Description:  "test expense",
		CategoryName: categoryName,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return output.Expense
}

func TestCreateExpenseUseCase_Execute(t *testing.T) {
	t.Run("creates an expense with a normalized date", func(t *testing.T) {
		fx := newFixture()
		created := fx.createExpense(t, "42.50", "2025-03-10", "Food")

		if created.CategoryName != "Food" {
			t.Errorf("expected category Food, got %s", created.CategoryName)
		}
		if !created.Date.Equal(mustDate("2025-03-10")) {
			t.Errorf("unexpected date: %v", created.Date)
		}
		if created.Amount.StringFixed(2) != "42.50" {
			t.Errorf("unexpected amount: %s", created.Amount)
		}
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		fx := newFixture()
		uc := NewCreateExpenseUseCase(fx.expRepo, fx.userRepo, fx.catRepo, nil)

		for _, amount := range []string{"0", "-5.00"} {
			amt, _ := decimal.NewFromString(amount)
			_, err := uc.Execute(context.Background(), CreateExpenseInput{
				UserID:       fx.userID,
				Amount:       amt,
				Date:         mustDate("2025-03-10"),
				CategoryName: "Food",
			})
			var validationErr *domainerror.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("amount %s: expected ValidationError, got %v", amount, err)
			}
			if _, ok := validationErr.Fields["amount"]; !ok {
				t.Errorf("amount %s: expected amount field error, got %v", amount, validationErr.Fields)
			}
		}
	})

	t.Run("rejects a missing date", func(t *testing.T) {
		fx := newFixture()
		uc := NewCreateExpenseUseCase(fx.expRepo, fx.userRepo, fx.catRepo, nil)

		_, err := uc.Execute(context.Background(), CreateExpenseInput{
			UserID:       fx.userID,
			Amount:       decimal.NewFromInt(10),
			CategoryName: "Food",
		})
		var validationErr *domainerror.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := validationErr.Fields["date"]; !ok {
			t.Errorf("expected date field error, got %v", validationErr.Fields)
		}
	})

	t.Run("reports an unknown category by name", func(t *testing.T) {
		fx := newFixture()
		uc := NewCreateExpenseUseCase(fx.expRepo, fx.userRepo, fx.catRepo, nil)

		_, err := uc.Execute(context.Background(), CreateExpenseInput{
			UserID:       fx.userID,
			Amount:       decimal.NewFromInt(10),
			Date:         mustDate("2025-03-10"),
			CategoryName: "Gadgets",
		})
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Fatalf("expected ErrCategoryNotFound, got %v", err)
		}
		var expErr *domainerror.ExpenseError
		if !errors.As(err, &expErr) {
			t.Fatalf("expected ExpenseError, got %v", err)
		}
		if expErr.Message != "Category not found: Gadgets" {
			t.Errorf("unexpected message: %q", expErr.Message)
		}
	})
}

func TestUpdateExpenseUseCase_Execute(t *testing.T) {
	t.Run("applies only the supplied fields", func(t *testing.T) {
		fx := newFixture()
		created := fx.createExpense(t, "42.50", "2025-03-10", "Food")

		uc := NewUpdateExpenseUseCase(fx.expRepo, fx.userRepo, fx.catRepo, nil)
		newAmount := decimal.RequireFromString("99.99")
		output, err := uc.Execute(context.Background(), UpdateExpenseInput{
			ExpenseID: created.ID,
			UserID:    fx.userID,
			Amount:    &newAmount,
		})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}

		if output.Expense.Amount.StringFixed(2) != "99.99" {
			t.Errorf("expected amount 99.99, got %s", output.Expense.Amount)
		}
		if output.Expense.Description != "test expense" {
			t.Errorf("description should be retained, got %q", output.Expense.Description)
		}
		if output.Expense.CategoryName != "Food" {
			t.Errorf("category should be retained, got %q", output.Expense.CategoryName)
		}
		if !output.Expense.Date.Equal(mustDate("2025-03-10")) {
			t.Errorf("date should be retained, got %v", output.Expense.Date)
		}
	})

	t.Run("moves the expense to a new category", func(t *testing.T) {
		fx := newFixture()
		created := fx.createExpense(t, "42.50", "2025-03-10", "Food")

		uc := NewUpdateExpenseUseCase(fx.expRepo, fx.userRepo, fx.catRepo, nil)
		newCategory := "Travel"
		output, err := uc.Execute(context.Background(), UpdateExpenseInput{
			ExpenseID:    created.ID,
			UserID:       fx.userID,
			CategoryName: &newCategory,
		})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if output.Expense.CategoryName != "Travel" {
			t.Errorf("expected category Travel, got %s", output.Expense.CategoryName)
		}
	})

	t.Run("rejects a non-positive replacement amount", func(t *testing.T) {
		fx := newFixture()
		created := fx.createExpense(t, "42.50", "2025-03-10", "Food")

		uc := NewUpdateExpenseUseCase(fx.expRepo, fx.userRepo, fx.catRepo, nil)
		zero := decimal.Zero
		_, err := uc.Execute(context.Background(), UpdateExpenseInput{
			ExpenseID: created.ID,
			UserID:    fx.userID,
			Amount:    &zero,
		})
		var validationErr *domainerror.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("another user's expense is reported as not found", func(t *testing.T) {
		fx := newFixture()
		created := fx.createExpense(t, "42.50", "2025-03-10", "Food")

		uc := NewUpdateExpenseUseCase(fx.expRepo, fx.userRepo, fx.catRepo, nil)
		desc := "hijacked"
		_, err := uc.Execute(context.Background(), UpdateExpenseInput{
			ExpenseID:   created.ID,
			UserID:      fx.otherUserID,
			Description: &desc,
		})
		if !errors.Is(err, domainerror.ErrExpenseNotFound) {
			t.Fatalf("expected ErrExpenseNotFound, got %v", err)
		}
	})
}

func TestDeleteExpenseUseCase_Execute(t *testing.T) {
	t.Run("deletes an owned expense", func(t *testing.T) {
		fx := newFixture()
		created := fx.createExpense(t, "42.50", "2025-03-10", "Food")

		uc := NewDeleteExpenseUseCase(fx.expRepo, fx.userRepo, nil)
		if _, err := uc.Execute(context.Background(), DeleteExpenseInput{
			ExpenseID: created.ID,
			UserID:    fx.userID,
		}); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		if _, err := fx.expRepo.FindByIDAndUser(context.Background(), created.ID, fx.userID); !errors.Is(err, domainerror.ErrExpenseNotFound) {
			t.Errorf("expense should be gone, got %v", err)
		}
	})

	t.Run("another user's expense is reported as not found", func(t *testing.T) {
		fx := newFixture()
		created := fx.createExpense(t, "42.50", "2025-03-10", "Food")

		uc := NewDeleteExpenseUseCase(fx.expRepo, fx.userRepo, nil)
		_, err := uc.Execute(context.Background(), DeleteExpenseInput{
			ExpenseID: created.ID,
			UserID:    fx.otherUserID,
		})
		if !errors.Is(err, domainerror.ErrExpenseNotFound) {
			t.Fatalf("expected ErrExpenseNotFound, got %v", err)
		}

		// The victim's record is untouched.
		if _, err := fx.expRepo.FindByIDAndUser(context.Background(), created.ID, fx.userID); err != nil {
			t.Errorf("owner's expense should survive, got %v", err)
		}
	})

	t.Run("deleting twice reports not found", func(t *testing.T) {
		fx := newFixture()
		created := fx.createExpense(t, "42.50", "2025-03-10", "Food")

		uc := NewDeleteExpenseUseCase(fx.expRepo, fx.userRepo, nil)
		input := DeleteExpenseInput{ExpenseID: created.ID, UserID: fx.userID}
		if _, err := uc.Execute(context.Background(), input); err != nil {
			t.Fatalf("first delete failed: %v", err)
		}
		if _, err := uc.Execute(context.Background(), input); !errors.Is(err, domainerror.ErrExpenseNotFound) {
			t.Fatalf("expected ErrExpenseNotFound on second delete, got %v", err)
		}
	})
}

func TestListExpensesUseCase_Execute(t *testing.T) {
	t.Run("lists only the caller's expenses", func(t *testing.T) {
		fx := newFixture()
		fx.createExpense(t, "10.00", "2025-03-01", "Food")
		fx.createExpense(t, "20.00", "2025-03-02", "Travel")

		uc := NewListExpensesUseCase(fx.expRepo, fx.userRepo)
		output, err := uc.Execute(context.Background(), ListExpensesInput{UserID: fx.userID})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(output.Expenses) != 2 {
			t.Errorf("expected 2 expenses, got %d", len(output.Expenses))
		}

		other, err := uc.Execute(context.Background(), ListExpensesInput{UserID: fx.otherUserID})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(other.Expenses) != 0 {
			t.Errorf("expected no expenses for other user, got %d", len(other.Expenses))
		}
	})

	t.Run("filters by category name", func(t *testing.T) {
		fx := newFixture()
		fx.createExpense(t, "10.00", "2025-03-01", "Food")
		fx.createExpense(t, "20.00", "2025-03-02", "Travel")

		uc := NewListExpensesUseCase(fx.expRepo, fx.userRepo)
		output, err := uc.Execute(context.Background(), ListExpensesInput{UserID: fx.userID, CategoryName: "Food"})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(output.Expenses) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(output.Expenses))
		}
		if output.Expenses[0].CategoryName != "Food" {
			t.Errorf("expected Food, got %s", output.Expenses[0].CategoryName)
		}
	})
}
