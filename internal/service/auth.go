// Package service implements the business logic of the storefront backend.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/preciousgifts/sugar-backend/internal/auth"
	"github.com/preciousgifts/sugar-backend/internal/domain"
	"github.com/preciousgifts/sugar-backend/internal/event"
	"github.com/preciousgifts/sugar-backend/internal/repository"
	apperrors "github.com/preciousgifts/sugar-backend/pkg/errors"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// minPasswordLength is the minimum password length required.
const minPasswordLength = 8

// Sequence counter names, one per entity.
const (
	seqUser     = "userId"
	seqProduct  = "productId"
	seqRating   = "ratingId"
	seqCarousel = "carouselId"
	seqMarquee  = "marqueeId"
	seqLog      = "logId"
)

// AuthService implements registration, login and token issuance.
type AuthService struct {
	userRepo   repository.UserRepository
	seqRepo    repository.SequenceRepository
	jwtManager *auth.JWTManager
	producer   *event.Producer
	logger     *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	seqRepo repository.SequenceRepository,
	jwtManager *auth.JWTManager,
	producer *event.Producer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		seqRepo:    seqRepo,
		jwtManager: jwtManager,
		producer:   producer,
		logger:     logger,
	}
}

// RegisterInput holds the parameters for registering a new user.
type RegisterInput struct {
	Username   string `json:"username" validate:"required,min=3,max=30"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	FirstName  string `json:"first_name" validate:"required"`
	MiddleName string `json:"middle_name" validate:"omitempty,max=50"`
	LastName   string `json:"last_name" validate:"required"`
	Role       string `json:"role" validate:"omitempty,oneof=user admin"`
}

// LoginInput holds the parameters for user login.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new user account with a sequence-assigned id.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.IsValidRole(role) {
		return nil, apperrors.InvalidInput("role must be one of: user, admin")
	}

	if _, err := s.userRepo.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.AlreadyExists("user", "username", input.Username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.AlreadyExists("user", "email", input.Email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.seqRepo.Next(ctx, seqUser)
	if err != nil {
		return nil, fmt.Errorf("assign user id: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           id,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		MiddleName:   input.MiddleName,
		LastName:     input.LastName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Publish registration event (non-blocking on failure).
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login authenticates a user by username and password and issues an access
// token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, "", apperrors.Unauthorized("invalid username or password")
	}

	if !user.IsActive {
		return nil, "", apperrors.Unauthorized("account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", apperrors.Unauthorized("invalid username or password")
	}

	token, err := s.jwtManager.GenerateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate access token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, token, nil
}

// validatePassword enforces the password policy: at least 8 characters with
// an uppercase letter, a lowercase letter, a digit and a special character.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		case unicode.IsPunct(ch) || unicode.IsSymbol(ch):
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return apperrors.InvalidInput("password must contain at least one uppercase letter, one lowercase letter, one digit, and one special character")
	}

	return nil
}
