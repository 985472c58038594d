// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package htmx detects htmx requests and answers them with htmx response headers.
package htmx

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Request headers sent by htmx.
const (
	HeaderRequest    = "HX-Request"
	HeaderBoosted    = "HX-Boosted"
	HeaderCurrentURL = "HX-Current-URL"
	HeaderTarget     = "HX-Target"
)

// Response headers understood by htmx.
const (
	HeaderRedirect = "HX-Redirect"
	HeaderRefresh  = "HX-Refresh"
)

// Request contains information about an htmx request.
type Request struct {
	// IsHtmx is true if this is an htmx request (HX-Request header is "true").
	IsHtmx bool

	// IsBoosted is true if this is a boosted request (HX-Boosted header is "true").
	IsBoosted bool

	// CurrentURL is the current URL of the browser (HX-Current-URL header).
	CurrentURL string

	// Target is the ID of the target element (HX-Target header).
	Target string
}

// ParseRequest extracts htmx information from request headers.
func ParseRequest(r *http.Request) *Request {
	return &Request{
		IsHtmx:     r.Header.Get(HeaderRequest) == "true",
		IsBoosted:  r.Header.Get(HeaderBoosted) == "true",
		CurrentURL: r.Header.Get(HeaderCurrentURL),
		Target:     r.Header.Get(HeaderTarget),
	}
}

// Redirect sends the client to url. htmx requests get an HX-Redirect header,
// everything else a 303.
func Redirect(c echo.Context, url string) error {
	if c.Request().Header.Get(HeaderRequest) == "true" {
		c.Response().Header().Set(HeaderRedirect, url)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, url)
}

// Refresh asks htmx to reload the current page, or redirects plain requests to fallback.
func Refresh(c echo.Context, fallback string) error {
	if c.Request().Header.Get(HeaderRequest) == "true" {
		c.Response().Header().Set(HeaderRefresh, "true")
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, fallback)
}
