// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package database_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db interface {
	Get(dest any, query string, args ...any) error
}, name string) bool {
	t.Helper()
	var count int64
	err := db.Get(&count, "SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?", name)
	require.NoError(t, err)
	return count == 1
}

func TestOpen_InMemory(t *testing.T) {
	db, err := database.Open(":memory:")

	require.NoError(t, err)
	require.NotNil(t, db)
	require.NoError(t, db.Close())
}

func TestOpen_DefaultDSN(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	_ = os.Chdir(tmpDir)
	defer func() {
		_ = os.Chdir(oldWd)
	}()

	db, err := database.Open("")

	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()
	assert.FileExists(t, filepath.Join(tmpDir, "data", "app.db"))
}

func TestOpen_MigrationsApplied(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	assert.True(t, tableExists(t, db, "users"))
	assert.True(t, tableExists(t, db, "user_profiles"))

	version, err := database.Version(context.Background(), db.DB)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestOpen_ForeignKeysEnabled(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	var enabled int
	require.NoError(t, db.Get(&enabled, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, enabled)

	_, err = db.Exec("INSERT INTO user_profiles (user_id, locale) VALUES (424242, 'en')")
	assert.Error(t, err, "profile without user must violate the foreign key")
}

func TestOpen_WithExistingParams(t *testing.T) {
	db, err := database.Open(":memory:?_txlock=deferred")

	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()
}

func TestOpen_FileDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "test.db")

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	assert.True(t, tableExists(t, db, "users"))
}

func TestMigrateDownAndReset(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()
	ctx := context.Background()

	require.NoError(t, database.MigrateDown(ctx, db.DB))
	assert.False(t, tableExists(t, db, "user_profiles"))
	assert.True(t, tableExists(t, db, "users"))

	require.NoError(t, database.MigrateReset(ctx, db.DB))
	assert.False(t, tableExists(t, db, "users"))

	require.NoError(t, database.RunMigrations(ctx, db.DB))
	assert.True(t, tableExists(t, db, "user_profiles"))
}
