// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package locale decides which locale a request is served in.
//
// Resolution walks five tiers and the first one that yields a value wins:
//
//  1. the locale stored in the session
//  2. the signed-in user's stored locale
//  3. the first two characters of Accept-Language, if that is an available locale
//  4. the locale cookie
//  5. the configured default
//
// Only tier 3 is checked while resolving. Callers must gate the result with
// IsValid before persisting it anywhere.
package locale

import (
	"maps"
	"slices"
	"time"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/config"
)

const (
	// SessionKey is the session bag key holding the locale.
	SessionKey = "locale"
	// CookieName is the name of the locale cookie.
	CookieName = "locale"
	// CookieLifetimeMinutes is how long the locale cookie lives (one year).
	CookieLifetimeMinutes = 525600
	// CookieLifetime is CookieLifetimeMinutes as a duration.
	CookieLifetime = CookieLifetimeMinutes * time.Minute
)

// Tier identifies where a resolved locale came from.
type Tier int

const (
	TierSession Tier = iota + 1
	TierUser
	TierHeader
	TierCookie
	TierDefault
)

func (t Tier) String() string {
	switch t {
	case TierSession:
		return "session"
	case TierUser:
		return "user"
	case TierHeader:
		return "header"
	case TierCookie:
		return "cookie"
	case TierDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Request holds the inputs of a resolution.
type Request struct { //nolint:govet // fieldalignment: readability over optimization
	// SessionLocale is consulted when HasSessionLocale is set.
	SessionLocale    string
	HasSessionLocale bool

	// UserLocale is consulted when Authenticated is set.
	UserLocale    string
	Authenticated bool

	AcceptLanguage string
	CookieLocale   string
}

// Resolver applies the resolution policy against a fixed set of available locales.
type Resolver struct {
	defaultLocale string
	available     map[string]string
}

// NewResolver creates a resolver from the locale configuration.
func NewResolver(cfg config.LocaleConfig) *Resolver {
	return &Resolver{
		defaultLocale: cfg.Default,
		available:     maps.Clone(cfg.Available),
	}
}

// Default returns the configured default locale.
func (r *Resolver) Default() string {
	return r.defaultLocale
}

// Available returns a copy of the available locales (code -> display name).
func (r *Resolver) Available() map[string]string {
	return maps.Clone(r.available)
}

// Codes returns the available locale codes in sorted order.
func (r *Resolver) Codes() []string {
	return slices.Sorted(maps.Keys(r.available))
}

// IsValid reports whether locale is one of the available locales.
func (r *Resolver) IsValid(locale string) bool {
	_, ok := r.available[locale]
	return ok
}

// Resolve picks the locale for a request and reports the tier it came from.
// The result is not guaranteed to be valid.
func (r *Resolver) Resolve(req Request) (string, Tier) {
	if req.HasSessionLocale {
		return req.SessionLocale, TierSession
	}

	if req.Authenticated && req.UserLocale != "" {
		return req.UserLocale, TierUser
	}

	if req.AcceptLanguage != "" {
		if candidate := HeaderPrefix(req.AcceptLanguage); r.IsValid(candidate) {
			return candidate, TierHeader
		}
	}

	if req.CookieLocale != "" {
		return req.CookieLocale, TierCookie
	}

	return r.defaultLocale, TierDefault
}

// HeaderPrefix returns the first two bytes of an Accept-Language value, or
// the whole value when it is shorter.
func HeaderPrefix(acceptLanguage string) string {
	if len(acceptLanguage) < 2 {
		return acceptLanguage
	}
	return acceptLanguage[:2]
}
