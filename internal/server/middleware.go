// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"fmt"
	"net/http"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/appcontext"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/config"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/locale"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/middleware"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/repository"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/services/session"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// csrfCookieName is the cookie holding the CSRF token.
const csrfCookieName = "_csrf"

func setupMiddleware(e *echo.Echo, cfg *config.Config, sessions *session.Manager, repo *repository.Repository, resolver *locale.Resolver) {
	e.Pre(middleware.StripTrailingSlash)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger())
	e.Use(echomw.Secure())
	e.Use(echomw.Gzip())
	e.Use(echomw.BodyLimit(fmt.Sprintf("%dM", cfg.Server.MaxBodySize)))
	e.Use(csrfMiddleware(cfg))
	e.Use(csrfToContext())

	// Request state: session, user, locale. Order matters: the locale
	// resolution reads both the session and the user.
	e.Use(middleware.AppContext())
	e.Use(middleware.Session(sessions))
	e.Use(middleware.LoadUser(repo))
	e.Use(middleware.Locale(resolver, repo, cfg.Session.Secure))
}

// csrfMiddleware configures CSRF protection.
func csrfMiddleware(cfg *config.Config) echo.MiddlewareFunc {
	return echomw.CSRFWithConfig(echomw.CSRFConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		TokenLookup:    "form:csrf_token,header:X-CSRF-Token",
		CookieName:     csrfCookieName,
		CookiePath:     "/",
		CookieSecure:   cfg.Session.Secure,
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	})
}

// csrfToContext copies the CSRF token to the request context for templates.
func csrfToContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := c.Get(echomw.DefaultCSRFConfig.ContextKey).(string); ok {
				ctx := appcontext.WithCSRFToken(c.Request().Context(), token)
				c.SetRequest(c.Request().WithContext(ctx))
			}
			return next(c)
		}
	}
}
