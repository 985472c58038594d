// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package appcontext provides the custom Echo context and context keys.
package appcontext

import (
	"context"
	"net/http"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/htmx"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/models"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/services/session"
	"github.com/labstack/echo/v4"
)

// Context keys for storing values in context.Context.
type (
	csrfTokenKey struct{}
	userKey      struct{}
)

// Context is a custom Echo context carrying the session, the optional
// signed-in user and cookies queued for the response.
type Context struct {
	echo.Context
	Htmx    *htmx.Request
	Session *session.Session
	User    *models.User // nil if not authenticated

	queued []*http.Cookie
}

// New wraps c. Queued cookies are written right before the response is committed.
func New(c echo.Context) *Context {
	cc := &Context{
		Context: c,
		Htmx:    htmx.ParseRequest(c.Request()),
		Session: session.New(),
	}
	c.Response().Before(cc.flushCookies)
	return cc
}

// From returns the custom context behind c, or nil if c was never wrapped.
func From(c echo.Context) *Context {
	if cc, ok := c.(*Context); ok {
		return cc
	}
	return nil
}

// GetUser returns the authenticated user, or nil if not authenticated.
func (c *Context) GetUser() *models.User {
	return c.User
}

// IsAuthenticated returns true if the user is authenticated.
func (c *Context) IsAuthenticated() bool {
	return c.User != nil
}

// SetUser attaches the user to the echo context and to the request context
// so templates can read it.
func (c *Context) SetUser(user *models.User) {
	c.User = user
	c.SetRequest(c.Request().WithContext(WithUser(c.Request().Context(), user)))
}

// QueueCookie schedules a cookie for the outgoing response. A later cookie
// with the same name replaces an earlier one.
func (c *Context) QueueCookie(cookie *http.Cookie) {
	for i, queued := range c.queued {
		if queued.Name == cookie.Name {
			c.queued[i] = cookie
			return
		}
	}
	c.queued = append(c.queued, cookie)
}

// QueuedCookies returns the cookies waiting to be written.
func (c *Context) QueuedCookies() []*http.Cookie {
	return c.queued
}

func (c *Context) flushCookies() {
	for _, cookie := range c.queued {
		http.SetCookie(c.Response(), cookie)
	}
	c.queued = nil
}

// WithCSRFToken stores the CSRF token for templates.
func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfTokenKey{}, token)
}

// CSRFToken returns the CSRF token of the request, or "".
func CSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(csrfTokenKey{}).(string); ok {
		return token
	}
	return ""
}

// WithUser stores the signed-in user for templates.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the signed-in user stored by SetUser, or nil.
func UserFromContext(ctx context.Context) *models.User {
	if user, ok := ctx.Value(userKey{}).(*models.User); ok {
		return user
	}
	return nil
}
