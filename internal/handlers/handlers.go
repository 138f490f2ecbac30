// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

// Package handlers contains the HTTP handlers for the JSON API.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health returns the health status.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
