// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/repository"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	user := testutil.NewTestUser(t, repo, "Ada", "ada@example.com")

	_, err := repo.GetProfile(context.Background(), user.ID)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFirstOrCreateProfile(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "Ada", "ada@example.com")

	first, err := repo.FirstOrCreateProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, first.UserID)
	assert.Empty(t, first.Locale)

	second, err := repo.FirstOrCreateProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestUpdateProfileLocale_CreatesOnFirstWrite(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "Ada", "ada@example.com")

	require.NoError(t, repo.UpdateProfileLocale(ctx, user.ID, "fr"))

	profile, err := repo.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "fr", profile.Locale)
}

func TestUpdateProfileLocale_UpdatesExisting(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "Ada", "ada@example.com")
	require.NoError(t, repo.UpdateProfileLocale(ctx, user.ID, "fr"))
	before, err := repo.GetProfile(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateProfileLocale(ctx, user.ID, "de"))

	after, err := repo.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, "de", after.Locale)

	var count int64
	require.NoError(t, repo.DB().Get(&count, `SELECT COUNT(*) FROM user_profiles WHERE user_id = ?`, user.ID))
	assert.Equal(t, int64(1), count)
}

func TestUpdateProfileLocale_UnknownUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	assert.Error(t, repo.UpdateProfileLocale(context.Background(), 4242, "en"))
}
