// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package middleware holds the Echo middleware that builds the request
// pipeline: custom context, session, user and locale.
package middleware

import (
	"log/slog"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/appcontext"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/services/session"
	"github.com/labstack/echo/v4"
)

// AppContext wraps every request in an appcontext.Context.
func AppContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(appcontext.New(c))
		}
	}
}

// Session loads the session bag from its cookie and writes it back right
// before the response is committed if it changed.
func Session(mgr *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := appcontext.From(c)
			if cc == nil {
				return next(c)
			}

			cc.Session = mgr.Load(c.Request())
			c.Response().Before(func() {
				if !cc.Session.Dirty() {
					return
				}
				cookie, err := mgr.Encode(cc.Session)
				if err != nil {
					slog.Error("session_write_failed", "error", err)
					return
				}
				c.SetCookie(cookie)
			})

			return next(c)
		}
	}
}
