// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"codeberg.org/qrmenu/qrmenu-server/internal/auth"
	"codeberg.org/qrmenu/qrmenu-server/internal/config"
	"codeberg.org/qrmenu/qrmenu-server/internal/i18n"
	"codeberg.org/qrmenu/qrmenu-server/internal/services/token"
)

func setupMiddleware(e *echo.Echo, cfg *config.Config, tokens *token.Service) {
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger())
	e.Use(middleware.Secure())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Server.MaxBodySize)))
	e.Use(i18nMiddleware())
	e.Use(resolveIdentity(tokens))
}

// resolveIdentity validates the session cookie and, when valid, puts the
// embedded identity into the request context. Invalid or absent tokens leave
// the request unauthenticated; RequireAuth decides whether that matters.
func resolveIdentity(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(token.CookieName)
			if err == nil && cookie.Value != "" {
				claims, err := tokens.Validate(cookie.Value)
				if err == nil {
					identity := &auth.Identity{ID: claims.UserID, Email: claims.Email}
					ctx := auth.WithIdentity(c.Request().Context(), identity)
					c.SetRequest(c.Request().WithContext(ctx))
				}
			}
			return next(c)
		}
	}
}

// RequireAuth rejects requests without a resolved identity.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !auth.IsAuthenticated(c.Request().Context()) {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": i18n.T(c.Request().Context(), "unauthorized"),
			})
		}
		return next(c)
	}
}

// requestLogger returns middleware that logs requests using slog.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
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

// i18nMiddleware sets the locale based on Accept-Language header.
func i18nMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			acceptLang := c.Request().Header.Get("Accept-Language")
			lang := i18n.MatchLanguage(acceptLang)
			ctx := i18n.WithLocale(c.Request().Context(), lang)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
