// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// fakeUserRepo keeps users in memory keyed by username.
type fakeUserRepo struct {
	byUsername map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if _, ok := f.byUsername[user.Username]; ok {
		return domainerror.ErrUsernameAlreadyExists
	}
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range f.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if user, ok := f.byUsername[username]; ok {
		return user, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := f.byUsername[username]
	return ok, nil
}

// racingUserRepo reports no duplicate on the existence pre-check but
// fails the insert, simulating a concurrent registration winning the race.
type racingUserRepo struct {
	*fakeUserRepo
}

func (f *racingUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return false, nil
}

func (f *racingUserRepo) Create(ctx context.Context, user *entity.User) error {
	return domainerror.ErrUsernameAlreadyExists
}

// fakePasswordService hashes by prefixing, strong enough for use case tests.
type fakePasswordService struct{}

func (f *fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (f *fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (f *fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

// fakeTokenService issues deterministic tokens and tracks invalidations.
type fakeTokenService struct {
	counter     int
	invalidated map[string]bool
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{invalidated: make(map[string]bool)}
}

func (f *fakeTokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, username string) (*adapter.TokenPair, error) {
	f.counter++
	return &adapter.TokenPair{
		AccessToken:  fmt.Sprintf("access-%d", f.counter),
		RefreshToken: fmt.Sprintf("refresh-%d", f.counter),
	}, nil
}

func (f *fakeTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func (f *fakeTokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func (f *fakeTokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	f.invalidated[token] = true
	return nil
}

func (f *fakeTokenService) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	return !f.invalidated[token], nil
}

func TestRegisterUserUseCase_Execute(t *testing.T) {
	newUseCase := func() (*RegisterUserUseCase, *fakeUserRepo) {
		repo := newFakeUserRepo()
		return NewRegisterUserUseCase(repo, &fakePasswordService{}, newFakeTokenService()), repo
	}

	t.Run("registers a user and issues tokens", func(t *testing.T) {
		uc, repo := newUseCase()

		output, err := uc.Execute(context.Background(), RegisterUserInput{
			Username: "alice",
			Password: "correct-horse",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.AccessToken == "" || output.RefreshToken == "" {
			t.Error("expected both tokens to be issued")
		}
		if output.User.Username != "alice" {
			t.Errorf("expected username alice, got %s", output.User.Username)
		}
		if output.User.PasswordHash == "correct-horse" {
			t.Error("password must not be stored in plain text")
		}
		if _, ok := repo.byUsername["alice"]; !ok {
			t.Error("user was not persisted")
		}
	})

	t.Run("rejects invalid usernames", func(t *testing.T) {
		uc, _ := newUseCase()

		for _, username := range []string{"", "ab", "has space", "way!bad"} {
			_, err := uc.Execute(context.Background(), RegisterUserInput{
				Username: username,
				Password: "correct-horse",
			})
			if !errors.Is(err, domainerror.ErrInvalidUsername) {
				t.Errorf("username %q: expected ErrInvalidUsername, got %v", username, err)
			}
		}
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		uc, _ := newUseCase()

		_, err := uc.Execute(context.Background(), RegisterUserInput{
			Username: "alice",
			Password: "short",
		})
		if !errors.Is(err, domainerror.ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		uc, _ := newUseCase()

		if _, err := uc.Execute(context.Background(), RegisterUserInput{
			Username: "alice",
			Password: "correct-horse",
		}); err != nil {
			t.Fatalf("first registration failed: %v", err)
		}

		_, err := uc.Execute(context.Background(), RegisterUserInput{
			Username: "alice",
			Password: "other-password",
		})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthError, got %v", err)
		}
		if authErr.Code != domainerror.ErrCodeUsernameExists {
			t.Errorf("expected username-exists code, got %s", authErr.Code)
		}
	})

	t.Run("losing a registration race still conflicts", func(t *testing.T) {
		repo := &racingUserRepo{newFakeUserRepo()}
		uc := NewRegisterUserUseCase(repo, &fakePasswordService{}, newFakeTokenService())

		_, err := uc.Execute(context.Background(), RegisterUserInput{
			Username: "alice",
			Password: "correct-horse",
		})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthError, got %v", err)
		}
		if authErr.Code != domainerror.ErrCodeUsernameExists {
			t.Errorf("expected username-exists code, got %s", authErr.Code)
		}
	})
}

func TestLoginUserUseCase_Execute(t *testing.T) {
	setup := func(t *testing.T) (*LoginUserUseCase, *fakeUserRepo) {
		t.Helper()
		repo := newFakeUserRepo()
		register := NewRegisterUserUseCase(repo, &fakePasswordService{}, newFakeTokenService())
		if _, err := register.Execute(context.Background(), RegisterUserInput{
			Username: "alice",
			Password: "correct-horse",
		}); err != nil {
			t.Fatalf("setup registration failed: %v", err)
		}
		return NewLoginUserUseCase(repo, &fakePasswordService{}, newFakeTokenService()), repo
	}

	t.Run("valid credentials yield a token pair", func(t *testing.T) {
		uc, _ := setup(t)

		output, err := uc.Execute(context.Background(), LoginUserInput{
			Username: "alice",
			Password: "correct-horse",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.AccessToken == "" || output.RefreshToken == "" {
			t.Error("expected both tokens to be issued")
		}
	})

	t.Run("wrong password and unknown user return the same error", func(t *testing.T) {
		uc, _ := setup(t)

		_, wrongPassErr := uc.Execute(context.Background(), LoginUserInput{
			Username: "alice",
			Password: "wrong",
		})
		_, unknownUserErr := uc.Execute(context.Background(), LoginUserInput{
			Username: "nobody",
			Password: "correct-horse",
		})

		for name, err := range map[string]error{"wrong password": wrongPassErr, "unknown user": unknownUserErr} {
			var authErr *domainerror.AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("%s: expected AuthError, got %v", name, err)
			}
			if authErr.Code != domainerror.ErrCodeInvalidCredentials {
				t.Errorf("%s: expected invalid-credentials code, got %s", name, authErr.Code)
			}
		}
	})
}
