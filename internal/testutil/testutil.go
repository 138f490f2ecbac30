// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"

	"codeberg.org/qrmenu/qrmenu-server/internal/database"
	"codeberg.org/qrmenu/qrmenu-server/internal/i18n"
	"codeberg.org/qrmenu/qrmenu-server/internal/models"
	"codeberg.org/qrmenu/qrmenu-server/internal/repository"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// InitI18n loads the translation bundle for tests that render messages.
func InitI18n(t *testing.T) {
	t.Helper()
	require.NoError(t, i18n.Init())
}

// NewTestUser creates a test user with a pending OTP challenge.
func NewTestUser(t *testing.T, repo *repository.Repository, email, otp string) *models.User {
	t.Helper()
	ctx := context.Background()
	user, err := repo.CreateUser(ctx, email, "Test User", "DE", otp, time.Now().Add(10*time.Minute))
	require.NoError(t, err)
	return user
}

// NewTestRestaurant creates a test restaurant for a user.
func NewTestRestaurant(t *testing.T, repo *repository.Repository, ownerID int64) *models.Restaurant {
	t.Helper()
	ctx := context.Background()
	restaurant, err := repo.CreateRestaurant(ctx, "Test Restaurant", "Test City", ownerID)
	require.NoError(t, err)
	return restaurant
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
