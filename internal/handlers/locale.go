// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/htmx"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/i18n"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/locale"
	"github.com/labstack/echo/v4"
)

// LocaleRequest is the body of a language switch.
type LocaleRequest struct {
	Locale string `json:"locale" form:"locale"`
}

// SwitchLocale stores the chosen locale in the session. The locale middleware
// picks it up on the next request and applies it everywhere else.
func (h *Handlers) SwitchLocale(c echo.Context) error {
	cc, err := appContext(c)
	if err != nil {
		return err
	}

	var req LocaleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, i18n.T(c.Request().Context(), "invalid_input"))
	}
	req.Locale = strings.TrimSpace(req.Locale)

	if !h.resolver.IsValid(req.Locale) {
		slog.Debug("locale_switch_rejected", "locale", req.Locale)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, i18n.T(c.Request().Context(), "invalid_locale"))
	}

	cc.Session.Put(locale.SessionKey, req.Locale)

	target := localRedirect(c.Request().Referer(), c.Request().Host, "/")
	return htmx.Refresh(c, target)
}
