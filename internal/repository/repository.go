// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

// Package repository provides database access for all models.
package repository

import (
	"database/sql"
	"errors"

	"github.com/vinovest/sqlx"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// Repository wraps the database handle for all persistence operations. It is
// constructed once at startup and passed explicitly; there is no package
// level database state.
type Repository struct {
	db *sqlx.DB
}

// New creates a new Repository instance.
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// wrapErr converts driver errors to repository errors.
func wrapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
