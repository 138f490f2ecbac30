// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package models

import "time"

// Category groups dishes within a restaurant's menu.
type Category struct { //nolint:govet // fieldalignment: readability over optimization
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	RestaurantID string    `db:"restaurant_id" json:"restaurant_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Dish is a menu item. A dish belongs to one restaurant and may appear in
// any number of its categories. SpiceLevel ranges 0-3 when set.
type Dish struct { //nolint:govet // fieldalignment: readability over optimization
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	Price        float64   `db:"price" json:"price"`
	Image        string    `db:"image" json:"image"`
	IsVeg        bool      `db:"is_veg" json:"is_veg"`
	SpiceLevel   *int64    `db:"spice_level" json:"spice_level,omitempty"`
	RestaurantID string    `db:"restaurant_id" json:"restaurant_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CategoryWithDishes is a category together with its dishes, used by the
// public menu view.
type CategoryWithDishes struct {
	Category
	Dishes []Dish `json:"dishes"`
}
