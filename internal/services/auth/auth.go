// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/models"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/repository"
	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/bcrypt"
)

// rememberTokenBytes yields a 60 character hex token.
const rememberTokenBytes = 30

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email format")
)

// dummyHash is used for constant-time login to prevent timing attacks
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

type Service struct {
	repo              *repository.Repository
	passwordValidator *PasswordValidator
}

func NewService(repo *repository.Repository) *Service {
	return &Service{
		repo:              repo,
		passwordValidator: DefaultPasswordValidator(),
	}
}

// PasswordValidator returns the password validator for use in handlers
func (s *Service) PasswordValidator() *PasswordValidator {
	return s.passwordValidator
}

// Register creates a new user account from the fillable attributes.
func (s *Service) Register(ctx context.Context, attrs models.UserAttributes) (*models.User, error) {
	attrs.Email = strings.TrimSpace(attrs.Email)
	attrs.Name = strings.TrimSpace(attrs.Name)

	if _, err := mail.ParseAddress(attrs.Email); err != nil {
		return nil, ErrInvalidEmail
	}

	validation := s.passwordValidator.Validate(attrs.Password, attrs.Email, attrs.Name)
	if !validation.Valid {
		return nil, &PasswordValidationError{Errors: validation.Errors}
	}

	// Soft-deleted accounts keep their address reserved.
	exists, err := s.repo.EmailExists(ctx, attrs.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	user, err := models.NewUser(attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("register_success", "user_id", user.ID, "email", user.Email)

	return user, nil
}

// Login authenticates a user and returns the user if successful.
// Soft-deleted accounts cannot sign in.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform bcrypt comparison to prevent timing attacks
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "email", email, "reason", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.Password.Check(password) {
		slog.Warn("login_failed", "email", email, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	slog.Info("login_success", "user_id", user.ID, "email", email)
	return user, nil
}

// ChangePassword changes a user's password (when they know their current password)
func (s *Service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !user.Password.Check(currentPassword) {
		return ErrInvalidCredentials
	}

	validation := s.passwordValidator.Validate(newPassword, user.Email, user.Name)
	if !validation.Valid {
		return &PasswordValidationError{Errors: validation.Errors}
	}

	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// SignOut replaces the remember token of the user, so anything derived
// from the previous token no longer matches.
func (s *Service) SignOut(ctx context.Context, userID int64) error {
	key := securecookie.GenerateRandomKey(rememberTokenBytes)
	if key == nil {
		return errors.New("failed to generate remember token")
	}
	token := hex.EncodeToString(key)

	if err := s.repo.SetRememberToken(ctx, userID, &token); err != nil {
		return fmt.Errorf("failed to rotate remember token: %w", err)
	}
	slog.Info("logout", "user_id", userID)
	return nil
}

// CloseAccount soft-deletes the user. The profile row is kept so a restored
// account gets its preferences back.
func (s *Service) CloseAccount(ctx context.Context, userID int64) error {
	if err := s.repo.SoftDeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to close account: %w", err)
	}
	slog.Info("account_closed", "user_id", userID)
	return nil
}
