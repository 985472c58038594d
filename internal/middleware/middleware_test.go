// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/appcontext"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/i18n"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/locale"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/middleware"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/models"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/repository"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/services/session"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = i18n.Init("en")
}

// observed records what the handler saw.
type observed struct {
	called     bool
	hasLocale  bool
	locale     string
	user       *models.User
	userLocale string
}

type fixture struct {
	e    *echo.Echo
	repo *repository.Repository
	mgr  *session.Manager
	seen *observed
}

type failingProfiles struct{}

func (failingProfiles) UpdateProfileLocale(context.Context, int64, string) error {
	return errors.New("disk full")
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	return newFixtureWithProfiles(t, repo, repo)
}

func newFixtureWithProfiles(t *testing.T, repo *repository.Repository, profiles middleware.ProfileStore) *fixture {
	t.Helper()
	mgr, err := session.NewManager(testutil.SessionConfig(), false)
	require.NoError(t, err)

	f := &fixture{e: echo.New(), repo: repo, mgr: mgr, seen: &observed{}}
	f.e.Use(middleware.AppContext())
	f.e.Use(middleware.Session(mgr))
	f.e.Use(middleware.LoadUser(repo))
	f.e.Use(middleware.Locale(locale.NewResolver(testutil.LocaleConfig()), profiles, false))

	handler := func(c echo.Context) error {
		ctx := c.Request().Context()
		f.seen.called = true
		f.seen.hasLocale = i18n.HasLocale(ctx)
		f.seen.locale = i18n.GetLocale(ctx)
		if cc := appcontext.From(c); cc != nil && cc.User != nil {
			f.seen.user = cc.User
			f.seen.userLocale = cc.User.Locale
		}
		return c.String(http.StatusOK, i18n.T(ctx, "welcome"))
	}
	f.e.GET("/", handler)
	f.e.GET("/account", handler, middleware.RequireAuth)
	return f
}

// sessionCookie encodes a session holding the given user and values.
func (f *fixture) sessionCookie(t *testing.T, userID int64, values map[string]string) *http.Cookie {
	t.Helper()
	s := session.New()
	s.SetUserID(userID)
	for k, v := range values {
		s.Put(k, v)
	}
	cookie, err := f.mgr.Encode(s)
	require.NoError(t, err)
	return cookie
}

func (f *fixture) do(path string, headers map[string]string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	f.seen = &observed{}
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

// sessionFrom decodes the session cookie set on the response, or nil.
func (f *fixture) sessionFrom(t *testing.T, rec *httptest.ResponseRecorder) *session.Data {
	t.Helper()
	cookie := testutil.FindCookie(rec, testutil.SessionConfig().CookieName)
	if cookie == nil {
		return nil
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	data, err := f.mgr.Parse(req)
	require.NoError(t, err)
	return data
}
