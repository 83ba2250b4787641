package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/auth"
	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/domain"
	"github.com/Emmanation-Designs/Gibsons-Collections3/internal/repository"
	apperrors "github.com/Emmanation-Designs/Gibsons-Collections3/pkg/errors"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

// SignUpInput holds the parameters for registering an account.
type SignUpInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInInput holds the parameters for signing in.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileInput holds the profile metadata fields a user may change.
type UpdateProfileInput struct {
	FullName  *string `json:"full_name" validate:"omitempty,max=200"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

// AccountService implements sign-up, sign-in, session, and profile logic.
type AccountService struct {
	users         repository.UserRepository
	tokens        repository.RefreshTokenRepository
	jwt           *auth.JWTManager
	refreshExpiry time.Duration
	logger        *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(users repository.UserRepository, tokens repository.RefreshTokenRepository, jwt *auth.JWTManager, refreshExpiry time.Duration, logger *slog.Logger) *AccountService {
	return &AccountService{
		users:         users,
		tokens:        tokens,
		jwt:           jwt,
		refreshExpiry: refreshExpiry,
		logger:        logger,
	}
}

// SignUp registers a new account and returns the signed-in session
// immediately, the way the storefront expects.
func (s *AccountService) SignUp(ctx context.Context, input SignUpInput) (*domain.Session, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if len(input.Password) < 8 {
		return nil, apperrors.InvalidInput("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))

	return s.issueSession(ctx, user)
}

// SignIn verifies credentials and returns a fresh session. Unknown email and
// wrong password produce the same response.
func (s *AccountService) SignIn(ctx context.Context, input SignInInput) (*domain.Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(input.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	return s.issueSession(ctx, user)
}

// SignOut revokes the presented refresh token, ending the session.
func (s *AccountService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperrors.InvalidInput("refresh token is required")
	}

	if err := s.tokens.Revoke(ctx, hashToken(refreshToken)); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	return nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new token pair.
// The old token is revoked (rotation).
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token")
	}

	stored, err := s.tokens.GetByHash(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid refresh token")
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	if stored.RevokedAt != nil || time.Now().UTC().After(stored.ExpiresAt) {
		return nil, apperrors.Unauthorized("refresh token expired or revoked")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid refresh token")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := s.tokens.Revoke(ctx, hashToken(refreshToken)); err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	return s.issueSession(ctx, user)
}

// GetProfile returns the profile for the authenticated user.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	p := user.Profile()
	return &p, nil
}

// UpdateProfile applies the given metadata changes and returns the updated
// profile. Nil fields are left unchanged.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*input.AvatarURL)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	p := user.Profile()
	return &p, nil
}

// issueSession generates the token pair, stores the refresh token hash, and
// returns the session.
func (s *AccountService) issueSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	access, err := s.jwt.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refresh, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.refreshExpiry)
	if err := s.tokens.Create(ctx, user.ID, hashToken(refresh), expiresAt); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &domain.Session{
		User: user.Profile(),
		Tokens: domain.TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
		},
	}, nil
}

// hashToken returns the hex SHA-256 of a token so raw tokens never touch the
// database.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
