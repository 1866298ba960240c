package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/app/repositories"
	"github.com/cphunt/backend/internal/pkg/apperrors"
	"github.com/cphunt/backend/internal/pkg/auth"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-z0-9_\-]{3,30}$`)
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Name     string
}

// AuthResult pairs a user with a freshly issued access token and its
// lifetime in seconds.
type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresIn int
}

// accountStore is the slice of the user repository the auth flows need.
type accountStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// AuthService handles account creation and login.
type AuthService struct {
	userRepo   accountStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo accountStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}
	if !emailRegex.MatchString(repositories.NormalizeEmail(email)) {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}
	return nil
}

func (s *AuthService) validateUsername(username string) error {
	if !usernameRegex.MatchString(strings.ToLower(strings.TrimSpace(username))) {
		return fmt.Errorf("%w: username must be 3-30 characters of letters, digits, _ or -", apperrors.ErrValidationFailed)
	}
	return nil
}

func (s *AuthService) validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrValidationFailed)
	}
	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: password must contain at least one letter and one digit", apperrors.ErrValidationFailed)
	}
	return nil
}

// Register creates a new account and returns it with an access token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := s.validateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := s.validateUsername(input.Username); err != nil {
		return nil, err
	}
	if err := s.validatePassword(input.Password); err != nil {
		return nil, err
	}

	email := repositories.NormalizeEmail(input.Email)
	username := strings.ToLower(strings.TrimSpace(input.Username))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	existing, err = s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	passwordHash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(input.Name),
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.Name == "" {
		user.Name = username
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("userId", user.ID).Msg("User registered")

	return s.issueToken(user)
}

// Login verifies credentials and returns the user with an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (*AuthResult, error) {
	token, expiresIn, err := s.jwtService.GenerateAccessToken(auth.TokenInput{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("issuing access token: %w", err)
	}
	return &AuthResult{User: user, Token: token, ExpiresIn: expiresIn}, nil
}
