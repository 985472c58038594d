// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/models"
)

// GetProfile retrieves the profile owned by a user.
func (r *Repository) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT * FROM user_profiles WHERE user_id = ?`, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &profile, nil
}

// FirstOrCreateProfile returns the user's profile, creating an empty one if none exists.
func (r *Repository) FirstOrCreateProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_profiles (user_id, created_at, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING`,
		userID, now, now)
	if err != nil {
		return nil, err
	}
	return r.GetProfile(ctx, userID)
}

// UpdateProfileLocale stores the locale on the user's profile, creating the profile on first write.
func (r *Repository) UpdateProfileLocale(ctx context.Context, userID int64, locale string) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_profiles (user_id, locale, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET locale = excluded.locale, updated_at = excluded.updated_at`,
		userID, locale, now, now)
	return err
}
