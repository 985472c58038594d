// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/htmx"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/i18n"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/locale"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/models"
	authsvc "codeberg.org/oliverandrich/go-webapp-i18n/internal/services/auth"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/templates"
	"github.com/labstack/echo/v4"
)

// AuthHandlers contains handlers for registration and sign-in.
type AuthHandlers struct {
	auth     *authsvc.Service
	resolver *locale.Resolver
}

// NewAuth creates a new AuthHandlers instance.
func NewAuth(auth *authsvc.Service, resolver *locale.Resolver) *AuthHandlers {
	return &AuthHandlers{auth: auth, resolver: resolver}
}

// LoginRequest is the body of a sign-in.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginPage renders the sign-in form.
func (h *AuthHandlers) LoginPage(c echo.Context) error {
	return Render(c, http.StatusOK, templates.Login(templates.FormData{Locales: localeOptions(h.resolver)}))
}

// Login signs the user in and sends them to the start page.
func (h *AuthHandlers) Login(c echo.Context) error {
	cc, err := appContext(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, i18n.T(ctx, "invalid_input"))
	}
	form := templates.FormData{Locales: localeOptions(h.resolver), Email: req.Email}

	if err := c.Validate(&req); err != nil {
		form.Errors = []string{i18n.T(ctx, "invalid_input")}
		return Render(c, http.StatusUnprocessableEntity, templates.Login(form))
	}

	user, err := h.auth.Login(ctx, req.Email, req.Password)
	if errors.Is(err, authsvc.ErrInvalidCredentials) {
		form.Errors = []string{i18n.T(ctx, "invalid_credentials")}
		return Render(c, http.StatusUnauthorized, templates.Login(form))
	}
	if err != nil {
		return err
	}

	cc.Session.SetUserID(user.ID)
	return htmx.Redirect(c, "/")
}

// RegisterPage renders the registration form.
func (h *AuthHandlers) RegisterPage(c echo.Context) error {
	return Render(c, http.StatusOK, templates.Register(templates.FormData{Locales: localeOptions(h.resolver)}))
}

// Register creates an account from the fillable attributes and signs it in.
func (h *AuthHandlers) Register(c echo.Context) error {
	cc, err := appContext(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	var attrs models.UserAttributes
	if err := c.Bind(&attrs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, i18n.T(ctx, "invalid_input"))
	}
	form := templates.FormData{Locales: localeOptions(h.resolver), Name: attrs.Name, Email: attrs.Email}

	if err := c.Validate(&attrs); err != nil {
		form.Errors = []string{i18n.T(ctx, "invalid_input")}
		for field, msg := range FieldErrors(err) {
			form.Errors = append(form.Errors, field+": "+msg)
		}
		return Render(c, http.StatusUnprocessableEntity, templates.Register(form))
	}

	user, err := h.auth.Register(ctx, attrs)
	var pwErr *authsvc.PasswordValidationError
	switch {
	case errors.Is(err, authsvc.ErrInvalidEmail):
		form.Errors = []string{i18n.T(ctx, "invalid_email")}
	case errors.Is(err, authsvc.ErrUserExists):
		form.Errors = []string{i18n.T(ctx, "user_exists")}
	case errors.As(err, &pwErr):
		form.Errors = passwordMessages(ctx, h.auth.PasswordValidator(), pwErr)
	case err != nil:
		return err
	}
	if err != nil {
		return Render(c, http.StatusUnprocessableEntity, templates.Register(form))
	}

	cc.Session.SetUserID(user.ID)
	return htmx.Redirect(c, "/")
}

// passwordMessages translates password rule violations, falling back to the
// validator's English message for rules without a translation.
func passwordMessages(ctx context.Context, v *authsvc.PasswordValidator, pwErr *authsvc.PasswordValidationError) []string {
	data := map[string]any{"Min": v.MinLength, "Max": v.MaxBytes}
	messages := make([]string, 0, len(pwErr.Errors))
	for _, e := range pwErr.Errors {
		id := "password_" + e.Code
		msg := i18n.TData(ctx, id, data)
		if msg == id {
			msg = e.Message
		}
		messages = append(messages, msg)
	}
	return messages
}

// Logout ends the session and rotates the user's remember token.
func (h *AuthHandlers) Logout(c echo.Context) error {
	cc, err := appContext(c)
	if err != nil {
		return err
	}
	if user := cc.GetUser(); user != nil {
		if err := h.auth.SignOut(c.Request().Context(), user.ID); err != nil {
			slog.Warn("logout_token_rotation_failed", "user_id", user.ID, "error", err)
		}
	}
	cc.Session.Invalidate()
	return htmx.Redirect(c, "/")
}
