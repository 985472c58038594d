// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/i18n"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RequestLogger logs every request through slog. Health checks are skipped.
func RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
				slog.String("ip", v.RemoteIP),
				slog.String("locale", i18n.GetLocale(c.Request().Context())),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				slog.LogAttrs(c.Request().Context(), slog.LevelError, "request", attrs...)
			} else {
				slog.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			}

			return nil
		},
	})
}

// StripTrailingSlash redirects requests with trailing slashes to the canonical URL without.
// Register it with Echo#Pre so it runs before routing.
func StripTrailingSlash(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u := c.Request().URL
		if u.Path != "/" && strings.HasSuffix(u.Path, "/") {
			target := strings.TrimRight(u.Path, "/")
			if target == "" {
				target = "/"
			}
			if u.RawQuery != "" {
				target += "?" + u.RawQuery
			}
			return c.Redirect(http.StatusMovedPermanently, target)
		}
		return next(c)
	}
}
