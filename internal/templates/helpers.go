// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package templates holds the templ components of the HTML pages.
// The *.templ files are the sources; the matching *_templ.go files render
// them and are replaced by `templ generate`.
package templates

import (
	"context"
	"io"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/appcontext"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/i18n"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/models"
	"github.com/a-h/templ"
)

// LocaleOption is one entry of the language switcher.
type LocaleOption struct {
	Code string
	Name string
}

// HomeData is what the start page shows.
type HomeData struct {
	Locales   []LocaleOption
	UserCount int
}

// FormData is shared by the login and registration pages.
type FormData struct {
	Locales []LocaleOption
	Name    string
	Email   string
	Errors  []string
}

// CSRFToken returns the CSRF token from the context.
func CSRFToken(ctx context.Context) string {
	return appcontext.CSRFToken(ctx)
}

// T translates a message by ID.
func T(ctx context.Context, messageID string) string {
	return i18n.T(ctx, messageID)
}

// TData translates a message with template data.
func TData(ctx context.Context, messageID string, data map[string]any) string {
	return i18n.TData(ctx, messageID, data)
}

// TPlural translates a message with plural support.
func TPlural(ctx context.Context, messageID string, count int) string {
	return i18n.TPlural(ctx, messageID, count)
}

// Locale returns the current locale.
func Locale(ctx context.Context) string {
	return i18n.GetLocale(ctx)
}

// GetUser returns the authenticated user from context, or nil if not logged in.
func GetUser(ctx context.Context) *models.User {
	return appcontext.UserFromContext(ctx)
}

// IsAuthenticated returns true if a user is logged in.
func IsAuthenticated(ctx context.Context) bool {
	return GetUser(ctx) != nil
}

// writer collects the first write error so components can emit markup
// without checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) *writer {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
	return w
}

func (w *writer) text(s string) *writer {
	return w.raw(templ.EscapeString(s))
}

func (w *writer) render(ctx context.Context, c templ.Component) *writer {
	if w.err == nil && c != nil {
		w.err = c.Render(ctx, w.w)
	}
	return w
}
