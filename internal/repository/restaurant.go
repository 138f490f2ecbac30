// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"github.com/google/uuid"

	"codeberg.org/qrmenu/qrmenu-server/internal/models"
)

// CreateRestaurant creates a new restaurant owned by the given user.
func (r *Repository) CreateRestaurant(ctx context.Context, name, location string, ownerID int64) (*models.Restaurant, error) {
	id := uuid.New().String()
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO restaurants (id, name, location, owner_id) VALUES (?, ?, ?, ?)`,
		id, name, location, ownerID); err != nil {
		return nil, err
	}
	return r.GetRestaurantByID(ctx, id)
}

// GetRestaurantByID retrieves a restaurant by ID.
func (r *Repository) GetRestaurantByID(ctx context.Context, id string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.GetContext(ctx, &restaurant, `SELECT * FROM restaurants WHERE id = ?`, id); err != nil {
		return nil, wrapErr(err)
	}
	return &restaurant, nil
}

// ListRestaurantsByOwner returns a user's restaurants, newest first.
func (r *Repository) ListRestaurantsByOwner(ctx context.Context, ownerID int64) ([]models.Restaurant, error) {
	restaurants := []models.Restaurant{}
	err := r.db.SelectContext(ctx, &restaurants,
		`SELECT * FROM restaurants WHERE owner_id = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

// ListPublicRestaurants returns the public listing of all restaurants.
func (r *Repository) ListPublicRestaurants(ctx context.Context) ([]models.PublicRestaurant, error) {
	restaurants := []models.PublicRestaurant{}
	err := r.db.SelectContext(ctx, &restaurants,
		`SELECT id, name, location FROM restaurants ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}
