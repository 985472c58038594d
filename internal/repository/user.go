// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/models"
)

// selectUser joins the profile locale onto the user row.
const selectUser = `SELECT u.id, u.name, u.email, u.password, u.remember_token, u.email_verified_at,
	u.created_at, u.updated_at, u.deleted_at, COALESCE(p.locale, '') AS locale
	FROM users u LEFT JOIN user_profiles p ON p.user_id = u.id`

// CreateUser inserts a new user and sets its ID and timestamps.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password, remember_token, email_verified_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Name, user.Email, user.Password, user.RememberToken, user.EmailVerifiedAt, now, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetUserByID retrieves an active user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUser(ctx, selectUser+` WHERE u.id = ? AND u.deleted_at IS NULL`, id)
}

// GetUserByIDWithTrashed retrieves a user by ID, including soft-deleted ones.
func (r *Repository) GetUserByIDWithTrashed(ctx context.Context, id int64) (*models.User, error) {
	return r.getUser(ctx, selectUser+` WHERE u.id = ?`, id)
}

// GetUserByEmail retrieves an active user by email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, selectUser+` WHERE u.email = ? AND u.deleted_at IS NULL`, email)
}

func (r *Repository) getUser(ctx context.Context, query string, args ...any) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// EmailExists checks if any user, soft-deleted or not, holds the email address.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE email = ?`, email); err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListUsers returns active users, newest first.
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	return r.listUsers(ctx, selectUser+` WHERE u.deleted_at IS NULL ORDER BY u.created_at DESC, u.id DESC`)
}

// ListTrashedUsers returns soft-deleted users, most recently deleted first.
func (r *Repository) ListTrashedUsers(ctx context.Context) ([]models.User, error) {
	return r.listUsers(ctx, selectUser+` WHERE u.deleted_at IS NOT NULL ORDER BY u.deleted_at DESC, u.id DESC`)
}

func (r *Repository) listUsers(ctx context.Context, query string) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, err
	}
	return users, nil
}

// CountUsers returns the number of active users.
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`)
	return count, err
}

// UpdateUser writes name, email and password of an active user.
func (r *Repository) UpdateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	err := expectAffected(r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, password = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		user.Name, user.Email, user.Password, now, user.ID))
	if err != nil {
		return err
	}
	user.UpdatedAt = now
	return nil
}

// SetRememberToken stores or clears (nil) the remember token of a user.
func (r *Repository) SetRememberToken(ctx context.Context, id int64, token *string) error {
	return expectAffected(r.db.ExecContext(ctx,
		`UPDATE users SET remember_token = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		token, time.Now().UTC(), id))
}

// MarkEmailVerified records that the user confirmed the email address.
func (r *Repository) MarkEmailVerified(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return expectAffected(r.db.ExecContext(ctx,
		`UPDATE users SET email_verified_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, now, id))
}

// SoftDeleteUser tombstones an active user. The row and its profile stay in place.
func (r *Repository) SoftDeleteUser(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return expectAffected(r.db.ExecContext(ctx,
		`UPDATE users SET deleted_at = ?, remember_token = NULL, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, now, id))
}

// RestoreUser clears the tombstone of a soft-deleted user.
func (r *Repository) RestoreUser(ctx context.Context, id int64) error {
	return expectAffected(r.db.ExecContext(ctx,
		`UPDATE users SET deleted_at = NULL, updated_at = ? WHERE id = ? AND deleted_at IS NOT NULL`,
		time.Now().UTC(), id))
}
