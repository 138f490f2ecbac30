// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/qrmenu/qrmenu-server/internal/database"
)

func TestOpen_InMemory(t *testing.T) {
	db, err := database.Open(":memory:")

	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Close()
	require.NoError(t, err)
}

func TestOpen_MigrationsApplied(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	var tables []string
	err = db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	require.NoError(t, err)

	assert.Contains(t, tables, "users")
	assert.Contains(t, tables, "restaurants")
	assert.Contains(t, tables, "categories")
	assert.Contains(t, tables, "dishes")
	assert.Contains(t, tables, "dish_categories")
}

func TestOpen_ForeignKeysEnforced(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	_, err = db.Exec(`INSERT INTO restaurants (id, name, location, owner_id) VALUES ('r1', 'Nowhere', 'Void', 999)`)
	assert.Error(t, err)
}
