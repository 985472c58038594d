// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "a perfectly fine passphrase"

// run executes the CLI against dsn and returns its output.
func run(t *testing.T, dsn string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out
	err := cmd.Run(context.Background(), append([]string{"app", "--database-dsn", dsn}, args...))
	return out.String(), err
}

func newDSN(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "app.db")
}

func TestUserLifecycle(t *testing.T) {
	dsn := newDSN(t)

	out, err := run(t, dsn, "user", "create", "--name", "Ada", "--email", "ada@example.com", "--password", testPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "created user 1")

	out, err = run(t, dsn, "user", "verify", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "user 1 verified")

	out, err = run(t, dsn, "user", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")

	_, err = run(t, dsn, "user", "delete", "1")
	require.NoError(t, err)

	out, err = run(t, dsn, "user", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "ada@example.com")

	out, err = run(t, dsn, "user", "list", "--trashed")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")

	out, err = run(t, dsn, "user", "restore", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "user 1 restored")

	out, err = run(t, dsn, "user", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")
}

func TestUserCreate_Duplicate(t *testing.T) {
	dsn := newDSN(t)
	_, err := run(t, dsn, "user", "create", "--name", "Ada", "--email", "ada@example.com", "--password", testPassword)
	require.NoError(t, err)

	_, err = run(t, dsn, "user", "create", "--name", "Ada", "--email", "ada@example.com", "--password", testPassword)

	assert.Error(t, err)
}

func TestUserDelete_BadID(t *testing.T) {
	_, err := run(t, newDSN(t), "user", "delete", "abc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a user id")
}

func TestUserRestore_NotFound(t *testing.T) {
	_, err := run(t, newDSN(t), "user", "restore", "42")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "user 42")
}

func TestMigrate(t *testing.T) {
	dsn := newDSN(t)

	out, err := run(t, dsn, "migrate", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version: 2")

	out, err = run(t, dsn, "migrate", "down")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version: 1")

	out, err = run(t, dsn, "migrate", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version: 0")
}
