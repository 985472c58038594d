// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package middleware

import (
	"context"
	"errors"
	"log/slog"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/appcontext"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/htmx"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/models"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/repository"
	"github.com/labstack/echo/v4"
)

// LoginPath is where RequireAuth sends anonymous visitors.
const LoginPath = "/login"

// UserLoader loads active (not soft-deleted) users.
type UserLoader interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// LoadUser resolves the session user. A session pointing at a missing or
// soft-deleted user is signed out.
func LoadUser(users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := appcontext.From(c)
			if cc == nil || cc.Session.UserID() == 0 {
				return next(c)
			}

			user, err := users.GetUserByID(c.Request().Context(), cc.Session.UserID())
			switch {
			case err == nil:
				cc.SetUser(user)
			case errors.Is(err, repository.ErrNotFound):
				slog.Info("session_user_gone", "user_id", cc.Session.UserID())
				cc.Session.SetUserID(0)
			default:
				return err
			}

			return next(c)
		}
	}
}

// RequireAuth redirects anonymous visitors to the login page.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cc := appcontext.From(c)
		if cc == nil || !cc.IsAuthenticated() {
			return htmx.Redirect(c, LoginPath)
		}
		return next(c)
	}
}
