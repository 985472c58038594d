// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/url"
	"sort"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/appcontext"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/locale"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/templates"
	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render renders a templ component with the given status code.
func Render(c echo.Context, statusCode int, component templ.Component) error {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := component.Render(c.Request().Context(), buf); err != nil {
		return err
	}

	return c.HTML(statusCode, buf.String())
}

// localeOptions lists the available locales for the switcher, sorted by code.
func localeOptions(resolver *locale.Resolver) []templates.LocaleOption {
	available := resolver.Available()
	options := make([]templates.LocaleOption, 0, len(available))
	for code, name := range available {
		options = append(options, templates.LocaleOption{Code: code, Name: name})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Code < options[j].Code })
	return options
}

// appContext returns the custom context, failing the request if the
// middleware chain did not install it.
func appContext(c echo.Context) (*appcontext.Context, error) {
	cc := appcontext.From(c)
	if cc == nil {
		return nil, echo.ErrInternalServerError.WithInternal(errNoAppContext)
	}
	return cc, nil
}

// localRedirect returns the path of target if it points at this host, else fallback.
func localRedirect(target, host, fallback string) string {
	if target == "" {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || (u.Host != "" && u.Host != host) || u.Path == "" || u.Path[0] != '/' {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
