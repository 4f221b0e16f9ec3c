package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"docmanager-backend/internal/shared/metrics"
	"docmanager-backend/internal/shared/telemetry"
)

// Service contains business logic for credential management.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// CheckResult is the outcome of a user existence probe. The hash itself is
// never exposed, only whether one is present.
type CheckResult struct {
	Exists              bool  `json:"exists"`
	UserID              int64 `json:"userId,omitempty"`
	PasswordHashPresent bool  `json:"passwordHashPresent,omitempty"`
}

// Signup registers a new user with a bcrypt-hashed password and returns the
// assigned identity. Exactly one row exists on success; the store's unique
// constraint rejects concurrent duplicates.
func (s *Service) Signup(ctx context.Context, username, password string) (Credentials, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Credentials{}, ErrInvalidInput
	}

	exists, err := s.Repo.ExistsByUsername(ctx, username)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if exists {
		return Credentials{}, ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Credentials{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.Repo.Create(ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return Credentials{}, ErrDuplicateUser
		}
		return Credentials{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	metrics.IncSignup()
	telemetry.Info("auth.signup", map[string]any{"user_id": user.ID, "username": user.Username})
	return Credentials{UserID: user.ID, Username: user.Username}, nil
}

// Login verifies a username/password pair and returns the identity on match.
// Verification goes through bcrypt's constant-time comparison, never string
// equality on the hash.
func (s *Service) Login(ctx context.Context, username, password string) (Credentials, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Credentials{}, ErrInvalidInput
	}

	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Credentials{}, ErrUserNotFound
		}
		return Credentials{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.IncLoginFailed()
		return Credentials{}, ErrInvalidCredentials
	}

	telemetry.Info("auth.login", map[string]any{"user_id": user.ID, "username": user.Username})
	return Credentials{UserID: user.ID, Username: user.Username}, nil
}

// CheckUser reports whether a user exists without revealing the stored hash.
func (s *Service) CheckUser(ctx context.Context, username string) (CheckResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return CheckResult{}, ErrInvalidInput
	}

	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return CheckResult{Exists: false}, nil
		}
		return CheckResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return CheckResult{
		Exists:              true,
		UserID:              user.ID,
		PasswordHashPresent: user.PasswordHash != "",
	}, nil
}
