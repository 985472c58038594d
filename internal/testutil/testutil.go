// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/config"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/database"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/models"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
)

// TestPassword is the plaintext password of users created by NewTestUser.
const TestPassword = "a perfectly fine passphrase"

// TestHashKey is a valid 32-byte hex-encoded session hash key.
const TestHashKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, repository.New(db)
}

// NewTestUser creates a test user in the database.
func NewTestUser(t *testing.T, repo *repository.Repository, name, email string) *models.User {
	t.Helper()
	user, err := models.NewUser(models.UserAttributes{
		Name:     name,
		Email:    email,
		Password: TestPassword,
	})
	require.NoError(t, err)
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// LocaleConfig returns the locale settings used across tests: en (default), de, fr.
func LocaleConfig() config.LocaleConfig {
	return config.LocaleConfig{
		Default: "en",
		Available: map[string]string{
			"en": "English",
			"de": "Deutsch",
			"fr": "Français",
		},
	}
}

// SessionConfig returns session settings with a fixed hash key.
func SessionConfig() *config.SessionConfig {
	return &config.SessionConfig{
		CookieName: "_session",
		MaxAge:     3600,
		HashKey:    TestHashKey,
	}
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewEchoContextWithHeaders creates an Echo context with custom headers.
func NewEchoContextWithHeaders(e *echo.Echo, method, path string, body io.Reader, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// FindCookie returns the named cookie set on the response, or nil.
func FindCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
