// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/templates"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors as an HTML page, or as JSON for clients that
// ask for it.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
		if he.Internal != nil {
			err = he.Internal
		}
	}
	if code >= http.StatusInternalServerError {
		slog.Error("request_failed", "path", c.Request().URL.Path, "status", code, "error", err)
		message = http.StatusText(code)
	}

	var renderErr error
	switch {
	case c.Request().Method == http.MethodHead:
		renderErr = c.NoContent(code)
	case wantsJSON(c.Request()):
		renderErr = c.JSON(code, map[string]string{"error": message})
	default:
		renderErr = Render(c, code, templates.Error(code, message))
	}
	if renderErr != nil {
		slog.Error("error_page_failed", "error", renderErr)
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) ||
		strings.HasPrefix(r.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}
