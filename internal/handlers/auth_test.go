// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/handlers"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/models"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registration(name, email, password string) url.Values {
	return url.Values{"name": {name}, "email": {email}, "password": {password}}
}

func TestLoginPage(t *testing.T) {
	a := newApp(t)

	rec := a.do(request{path: "/login", headers: map[string]string{"Accept-Language": "de"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Anmelden")
}

func TestRegisterPage(t *testing.T) {
	a := newApp(t)

	rec := a.do(request{path: "/register"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="name"`)
}

func TestRegister(t *testing.T) {
	a := newApp(t)
	body, headers := form(registration("Ada", "ada@example.com", testutil.TestPassword))

	rec := a.do(request{method: http.MethodPost, path: "/register", body: body, headers: headers})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	user, err := a.repo.GetUserByEmail(t.Context(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, user.ID, a.session(t, rec).UserID)
}

func TestRegister_IgnoresNonFillableInput(t *testing.T) {
	a := newApp(t)
	values := registration("Ada", "ada@example.com", testutil.TestPassword)
	values.Set("email_verified_at", "01-01-2020 10:00:00")
	values.Set("remember_token", "forged")
	body, headers := form(values)

	rec := a.do(request{method: http.MethodPost, path: "/register", body: body, headers: headers})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	user, err := a.repo.GetUserByEmail(t.Context(), "ada@example.com")
	require.NoError(t, err)
	assert.False(t, user.HasVerifiedEmail())
	assert.Nil(t, user.RememberToken)
}

func TestRegister_Duplicate(t *testing.T) {
	a := newApp(t)
	testutil.NewTestUser(t, a.repo, "Ada", "ada@example.com")
	body, headers := form(registration("Ada", "ada@example.com", testutil.TestPassword))

	rec := a.do(request{method: http.MethodPost, path: "/register", body: body, headers: headers})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "An account with this email address already exists.")
}

func TestRegister_MissingName(t *testing.T) {
	a := newApp(t)
	body, headers := form(registration("", "ada@example.com", testutil.TestPassword))

	rec := a.do(request{method: http.MethodPost, path: "/register", body: body, headers: headers})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "name: this field is required")
}

func TestRegister_WeakPassword(t *testing.T) {
	a := newApp(t)
	body, headers := form(registration("Ada", "ada@example.com", "short"))

	rec := a.do(request{method: http.MethodPost, path: "/register", body: body, headers: headers})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password must be at least 12 characters long.")
}

func TestRegister_WeakPasswordTranslated(t *testing.T) {
	a := newApp(t)
	body, headers := form(registration("Ada", "ada@example.com", "123456789012345"))
	headers["Accept-Language"] = "de"

	rec := a.do(request{method: http.MethodPost, path: "/register", body: body, headers: headers})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Das Passwort darf nicht nur aus Ziffern bestehen.")
}

func TestRegister_PasswordOverBcryptLimit(t *testing.T) {
	a := newApp(t)
	password := strings.Repeat("é", 60) + "xq9Zkpl" // 67 characters, 127 bytes
	attrs := models.UserAttributes{Name: "Ada", Email: "ada@example.com", Password: password}
	require.NoError(t, handlers.NewValidator().Validate(&attrs))
	body, headers := form(registration(attrs.Name, attrs.Email, password))

	rec := a.do(request{method: http.MethodPost, path: "/register", body: body, headers: headers})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password must be at most 72 bytes long.")

	exists, err := a.repo.EmailExists(t.Context(), "ada@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLogin(t *testing.T) {
	a := newApp(t)
	user := testutil.NewTestUser(t, a.repo, "Ada", "ada@example.com")
	body, headers := form(url.Values{"email": {"ada@example.com"}, "password": {testutil.TestPassword}})

	rec := a.do(request{method: http.MethodPost, path: "/login", body: body, headers: headers})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, user.ID, a.session(t, rec).UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	a := newApp(t)
	testutil.NewTestUser(t, a.repo, "Ada", "ada@example.com")
	body, headers := form(url.Values{"email": {"ada@example.com"}, "password": {"not the password"}})
	headers["Accept-Language"] = "fr"

	rec := a.do(request{method: http.MethodPost, path: "/login", body: body, headers: headers})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "E-mail ou mot de passe incorrect.")
}

func TestLogin_MissingFields(t *testing.T) {
	a := newApp(t)
	body, headers := form(url.Values{"email": {"ada@example.com"}})

	rec := a.do(request{method: http.MethodPost, path: "/login", body: body, headers: headers})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLogout(t *testing.T) {
	a := newApp(t)
	user := testutil.NewTestUser(t, a.repo, "Ada", "ada@example.com")

	rec := a.do(request{method: http.MethodPost, path: "/logout", cookies: []*http.Cookie{a.signedIn(t, user.ID)}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookie := testutil.FindCookie(rec, testutil.SessionConfig().CookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)

	stored, err := a.repo.GetUserByID(t.Context(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RememberToken)
	assert.Len(t, *stored.RememberToken, 60)
}
