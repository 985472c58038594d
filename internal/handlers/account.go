// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/i18n"
	authsvc "codeberg.org/oliverandrich/go-webapp-i18n/internal/services/auth"
	"github.com/labstack/echo/v4"
)

// AccountHandlers serve the signed-in user's own account.
type AccountHandlers struct {
	auth *authsvc.Service
}

// NewAccount creates a new AccountHandlers instance.
func NewAccount(auth *authsvc.Service) *AccountHandlers {
	return &AccountHandlers{auth: auth}
}

// Show returns the signed-in user as JSON. Hidden fields are never serialized.
func (h *AccountHandlers) Show(c echo.Context) error {
	cc, err := appContext(c)
	if err != nil {
		return err
	}
	if !cc.IsAuthenticated() {
		return echo.ErrUnauthorized
	}
	return c.JSON(http.StatusOK, cc.GetUser())
}

// ChangePasswordRequest is the body of a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" form:"new_password" validate:"required"`
}

// ChangePassword replaces the password after checking the current one.
func (h *AccountHandlers) ChangePassword(c echo.Context) error {
	cc, err := appContext(c)
	if err != nil {
		return err
	}
	if !cc.IsAuthenticated() {
		return echo.ErrUnauthorized
	}
	ctx := c.Request().Context()

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, i18n.T(ctx, "invalid_input"))
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, i18n.T(ctx, "invalid_input"))
	}

	err = h.auth.ChangePassword(ctx, cc.GetUser().ID, req.CurrentPassword, req.NewPassword)
	var pwErr *authsvc.PasswordValidationError
	switch {
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, i18n.T(ctx, "invalid_credentials"))
	case errors.As(err, &pwErr):
		messages := passwordMessages(ctx, h.auth.PasswordValidator(), pwErr)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, strings.Join(messages, " "))
	case err != nil:
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete closes the account (soft delete) and ends the session.
func (h *AccountHandlers) Delete(c echo.Context) error {
	cc, err := appContext(c)
	if err != nil {
		return err
	}
	if !cc.IsAuthenticated() {
		return echo.ErrUnauthorized
	}

	if err := h.auth.CloseAccount(c.Request().Context(), cc.GetUser().ID); err != nil {
		return err
	}

	cc.Session.Invalidate()
	return c.NoContent(http.StatusNoContent)
}
