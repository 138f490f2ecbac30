// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"codeberg.org/qrmenu/qrmenu-server/internal/models"
)

// CreateCategory creates a new menu category for a restaurant.
func (r *Repository) CreateCategory(ctx context.Context, name, restaurantID string) (*models.Category, error) {
	id := uuid.New().String()
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, restaurant_id) VALUES (?, ?, ?)`,
		id, name, restaurantID); err != nil {
		return nil, err
	}

	var category models.Category
	if err := r.db.GetContext(ctx, &category, `SELECT * FROM categories WHERE id = ?`, id); err != nil {
		return nil, wrapErr(err)
	}
	return &category, nil
}

// NewDishParams holds the fields for dish creation.
type NewDishParams struct { //nolint:govet // fieldalignment: readability over optimization
	Name         string
	Description  string
	Price        float64
	Image        string
	IsVeg        bool
	SpiceLevel   *int64
	RestaurantID string
	CategoryIDs  []string
}

// CreateDish creates a dish and links it to the given categories in a single
// transaction.
func (r *Repository) CreateDish(ctx context.Context, params NewDishParams) (*models.Dish, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.New().String()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO dishes (id, name, description, price, image, is_veg, spice_level, restaurant_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, params.Name, params.Description, params.Price, params.Image,
		params.IsVeg, params.SpiceLevel, params.RestaurantID); err != nil {
		return nil, err
	}

	for _, categoryID := range params.CategoryIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dish_categories (dish_id, category_id) VALUES (?, ?)`,
			id, categoryID); err != nil {
			return nil, fmt.Errorf("linking category %s: %w", categoryID, err)
		}
	}

	var dish models.Dish
	if err := tx.GetContext(ctx, &dish, `SELECT * FROM dishes WHERE id = ?`, id); err != nil {
		return nil, wrapErr(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &dish, nil
}

// ListMenu returns a restaurant's categories with their dishes, suitable for
// the public menu view.
func (r *Repository) ListMenu(ctx context.Context, restaurantID string) ([]models.CategoryWithDishes, error) {
	var categories []models.Category
	err := r.db.SelectContext(ctx, &categories,
		`SELECT * FROM categories WHERE restaurant_id = ? ORDER BY created_at`, restaurantID)
	if err != nil {
		return nil, err
	}

	type dishRow struct {
		models.Dish
		CategoryID string `db:"category_id"`
	}
	var rows []dishRow
	err = r.db.SelectContext(ctx, &rows,
		`SELECT d.*, dc.category_id
		 FROM dishes d
		 JOIN dish_categories dc ON dc.dish_id = d.id
		 WHERE d.restaurant_id = ?
		 ORDER BY d.created_at`, restaurantID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]models.Dish, len(categories))
	for _, row := range rows {
		byCategory[row.CategoryID] = append(byCategory[row.CategoryID], row.Dish)
	}

	menu := make([]models.CategoryWithDishes, 0, len(categories))
	for _, category := range categories {
		dishes := byCategory[category.ID]
		if dishes == nil {
			dishes = []models.Dish{}
		}
		menu = append(menu, models.CategoryWithDishes{Category: category, Dishes: dishes})
	}
	return menu, nil
}
