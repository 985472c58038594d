// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/appcontext"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/i18n"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/locale"
	"github.com/labstack/echo/v4"
)

// ProfileStore persists the locale preference of a user.
type ProfileStore interface {
	UpdateProfileLocale(ctx context.Context, userID int64, locale string) error
}

// Locale resolves the request locale and, when it is an available locale,
// activates it for the request, stores it in the session, queues the locale
// cookie and records it on the signed-in user's profile. An unavailable
// locale leaves everything untouched and the request continues.
func Locale(resolver *locale.Resolver, profiles ProfileStore, secureCookie bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := appcontext.From(c)
			if cc == nil {
				return next(c)
			}

			resolved, tier := resolver.Resolve(localeRequest(cc))
			if !resolver.IsValid(resolved) {
				slog.Debug("locale_rejected", "locale", resolved, "source", tier.String())
				return next(c)
			}

			ctx := i18n.WithLocale(c.Request().Context(), resolved)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set("Content-Language", resolved)

			cc.Session.Put(locale.SessionKey, resolved)
			cc.QueueCookie(LocaleCookie(resolved, secureCookie))

			if user := cc.GetUser(); user != nil && user.Locale != resolved {
				if err := profiles.UpdateProfileLocale(ctx, user.ID, resolved); err != nil {
					slog.Warn("locale_profile_update_failed", "user_id", user.ID, "locale", resolved, "error", err)
				} else {
					user.Locale = resolved
				}
			}

			return next(c)
		}
	}
}

func localeRequest(cc *appcontext.Context) locale.Request {
	req := locale.Request{
		AcceptLanguage: cc.Request().Header.Get("Accept-Language"),
	}
	if cc.Session.Has(locale.SessionKey) {
		req.HasSessionLocale = true
		req.SessionLocale = cc.Session.Get(locale.SessionKey)
	}
	if user := cc.GetUser(); user != nil {
		req.Authenticated = true
		req.UserLocale = user.Locale
	}
	if cookie, err := cc.Cookie(locale.CookieName); err == nil {
		req.CookieLocale = cookie.Value
	}
	return req
}

// LocaleCookie builds the long-lived cookie remembering loc.
func LocaleCookie(loc string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     locale.CookieName,
		Value:    loc,
		Path:     "/",
		Expires:  time.Now().Add(locale.CookieLifetime),
		MaxAge:   int(locale.CookieLifetime.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
