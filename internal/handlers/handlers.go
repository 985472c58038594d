// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/locale"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/repository"
	"codeberg.org/oliverandrich/go-webapp-i18n/internal/templates"
	"github.com/labstack/echo/v4"
)

var errNoAppContext = errors.New("request is missing the application context")

// Handlers contains the page handlers.
type Handlers struct {
	repo     *repository.Repository
	resolver *locale.Resolver
}

// New creates a new Handlers instance.
func New(repo *repository.Repository, resolver *locale.Resolver) *Handlers {
	return &Handlers{repo: repo, resolver: resolver}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Home renders the start page in the request locale.
func (h *Handlers) Home(c echo.Context) error {
	count, err := h.repo.CountUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, http.StatusOK, templates.Home(templates.HomeData{
		Locales:   localeOptions(h.resolver),
		UserCount: int(count),
	}))
}
