// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/qrmenu/qrmenu-server/internal/auth"
	"codeberg.org/qrmenu/qrmenu-server/internal/i18n"
	"codeberg.org/qrmenu/qrmenu-server/internal/repository"
)

// MenuHandlers contains handlers for menu management.
type MenuHandlers struct {
	repo *repository.Repository
}

// NewMenu creates a new MenuHandlers instance.
func NewMenu(repo *repository.Repository) *MenuHandlers {
	return &MenuHandlers{repo: repo}
}

// ownsRestaurant reports whether the caller owns the restaurant. A missing
// restaurant also reports false, so non-owners cannot probe for existence.
func (h *MenuHandlers) ownsRestaurant(ctx context.Context, restaurantID string, callerID int64) (bool, error) {
	restaurant, err := h.repo.GetRestaurantByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return restaurant.OwnerID == callerID, nil
}

// CreateCategoryRequest is the request body for category creation.
type CreateCategoryRequest struct {
	Name         string `json:"name"`
	RestaurantID string `json:"restaurantId"`
}

// CreateCategory creates a menu category on a restaurant the caller owns.
func (h *MenuHandlers) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	if req.RestaurantID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "restaurantId is required"})
	}

	ctx := c.Request().Context()
	identity := auth.GetIdentity(ctx)

	owned, err := h.ownsRestaurant(ctx, req.RestaurantID, identity.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}
	if !owned {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": i18n.T(ctx, "unauthorized")})
	}

	category, err := h.repo.CreateCategory(ctx, req.Name, req.RestaurantID)
	if err != nil {
		slog.Error("failed to create category", "error", err, "restaurant_id", req.RestaurantID)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create category"})
	}

	return c.JSON(http.StatusCreated, category)
}

// CreateDishRequest is the request body for dish creation.
type CreateDishRequest struct { //nolint:govet // fieldalignment: readability over optimization
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Image        string   `json:"image"`
	IsVeg        *bool    `json:"isVeg"`
	SpiceLevel   *int64   `json:"spiceLevel"`
	RestaurantID string   `json:"restaurantId"`
	CategoryIDs  []string `json:"categoryIds"`
}

// CreateDish creates a dish on a restaurant the caller owns and links it to
// the given categories.
func (h *MenuHandlers) CreateDish(c echo.Context) error {
	var req CreateDishRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	if req.RestaurantID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "restaurantId is required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "price must not be negative"})
	}
	if req.SpiceLevel != nil && (*req.SpiceLevel < 0 || *req.SpiceLevel > 3) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "spiceLevel must be between 0 and 3"})
	}

	ctx := c.Request().Context()
	identity := auth.GetIdentity(ctx)

	owned, err := h.ownsRestaurant(ctx, req.RestaurantID, identity.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}
	if !owned {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": i18n.T(ctx, "unauthorized")})
	}

	// Dishes default to vegetarian when unspecified
	isVeg := true
	if req.IsVeg != nil {
		isVeg = *req.IsVeg
	}

	dish, err := h.repo.CreateDish(ctx, repository.NewDishParams{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Image:        req.Image,
		IsVeg:        isVeg,
		SpiceLevel:   req.SpiceLevel,
		RestaurantID: req.RestaurantID,
		CategoryIDs:  req.CategoryIDs,
	})
	if err != nil {
		slog.Error("failed to create dish", "error", err, "restaurant_id", req.RestaurantID)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create dish"})
	}

	return c.JSON(http.StatusCreated, dish)
}

// GetMenu returns a restaurant's categories with their dishes. Public.
func (h *MenuHandlers) GetMenu(c echo.Context) error {
	restaurantID := c.Param("restaurantId")

	menu, err := h.repo.ListMenu(c.Request().Context(), restaurantID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}
	return c.JSON(http.StatusOK, menu)
}
