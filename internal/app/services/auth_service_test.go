package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/pkg/apperrors"
	"github.com/cphunt/backend/internal/pkg/auth"
)

type fakeAccountStore struct {
	users []*models.User
}

func (f *fakeAccountStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountStore) Create(_ context.Context, user *models.User) error {
	copied := *user
	f.users = append(f.users, &copied)
	return nil
}

func newTestAuthService(store *fakeAccountStore) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	return NewAuthService(store, jwtService, zerolog.Nop())
}

func TestRegisterIssuesTokenWithExpiry(t *testing.T) {
	store := &fakeAccountStore{}
	service := newTestAuthService(store)

	result, err := service.Register(context.Background(), RegisterInput{
		Email:    "  Anna@Example.COM ",
		Username: "Anna-Builds",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected an access token")
	}
	if result.ExpiresIn != 3600 {
		t.Errorf("expected 3600 seconds expiry, got %d", result.ExpiresIn)
	}
	if result.User.Email != "anna@example.com" {
		t.Errorf("email not normalized: %s", result.User.Email)
	}
	if result.User.Username != "anna-builds" {
		t.Errorf("username not normalized: %s", result.User.Username)
	}
	if result.User.Name != "anna-builds" {
		t.Errorf("expected name to default to the username, got %s", result.User.Name)
	}
	if result.User.Role != models.RoleUser {
		t.Errorf("expected USER role, got %s", result.User.Role)
	}
}

func TestRegisterValidation(t *testing.T) {
	service := newTestAuthService(&fakeAccountStore{})

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{name: "empty email", input: RegisterInput{Username: "maker", Password: "password1"}},
		{name: "malformed email", input: RegisterInput{Email: "not-an-email", Username: "maker", Password: "password1"}},
		{name: "short username", input: RegisterInput{Email: "a@b.com", Username: "ab", Password: "password1"}},
		{name: "short password", input: RegisterInput{Email: "a@b.com", Username: "maker", Password: "pw1"}},
		{name: "password without digit", input: RegisterInput{Email: "a@b.com", Username: "maker", Password: "passwords"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Register(context.Background(), tt.input); !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("expected validation failure, got %v", err)
			}
		})
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	store := &fakeAccountStore{}
	service := newTestAuthService(store)

	if _, err := service.Register(context.Background(), RegisterInput{
		Email:    "taken@example.com",
		Username: "taken",
		Password: "password1",
	}); err != nil {
		t.Fatalf("seed registration failed: %v", err)
	}

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "taken@example.com",
		Username: "someone-else",
		Password: "password1",
	})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Errorf("expected duplicate email error, got %v", err)
	}

	_, err = service.Register(context.Background(), RegisterInput{
		Email:    "fresh@example.com",
		Username: "taken",
		Password: "password1",
	})
	if !errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
		t.Errorf("expected duplicate username error, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	store := &fakeAccountStore{}
	service := newTestAuthService(store)

	if _, err := service.Register(context.Background(), RegisterInput{
		Email:    "maker@example.com",
		Username: "maker",
		Password: "password1",
	}); err != nil {
		t.Fatalf("seed registration failed: %v", err)
	}

	result, err := service.Login(context.Background(), "maker@example.com", "password1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token == "" || result.ExpiresIn != 3600 {
		t.Errorf("unexpected token result: token=%q expiresIn=%d", result.Token, result.ExpiresIn)
	}

	if _, err := service.Login(context.Background(), "maker@example.com", "wrong-pass1"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("expected invalid credentials for wrong password, got %v", err)
	}
	if _, err := service.Login(context.Background(), "unknown@example.com", "password1"); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("expected invalid credentials for unknown email, got %v", err)
	}
}
