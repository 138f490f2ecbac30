// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/qrmenu/qrmenu-server/internal/auth"
	"codeberg.org/qrmenu/qrmenu-server/internal/models"
	"codeberg.org/qrmenu/qrmenu-server/internal/repository"
)

// RestaurantHandlers contains handlers for restaurant management.
type RestaurantHandlers struct {
	repo *repository.Repository
}

// NewRestaurant creates a new RestaurantHandlers instance.
func NewRestaurant(repo *repository.Repository) *RestaurantHandlers {
	return &RestaurantHandlers{repo: repo}
}

// CreateRestaurantRequest is the request body for restaurant creation.
type CreateRestaurantRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Create creates a restaurant owned by the caller.
func (h *RestaurantHandlers) Create(c echo.Context) error {
	var req CreateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if len(req.Name) < 2 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name must be at least 2 characters"})
	}
	if len(req.Location) < 2 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "location must be at least 2 characters"})
	}

	identity := auth.GetIdentity(c.Request().Context())
	restaurant, err := h.repo.CreateRestaurant(c.Request().Context(), req.Name, req.Location, identity.ID)
	if err != nil {
		slog.Error("failed to create restaurant", "error", err, "owner_id", identity.ID)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create restaurant"})
	}

	return c.JSON(http.StatusCreated, restaurant)
}

// ListMine returns the caller's restaurants, newest first.
func (h *RestaurantHandlers) ListMine(c echo.Context) error {
	identity := auth.GetIdentity(c.Request().Context())
	restaurants, err := h.repo.ListRestaurantsByOwner(c.Request().Context(), identity.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}
	return c.JSON(http.StatusOK, restaurants)
}

// ListPublic returns the public restaurant listing.
func (h *RestaurantHandlers) ListPublic(c echo.Context) error {
	restaurants, err := h.repo.ListPublicRestaurants(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}
	return c.JSON(http.StatusOK, restaurants)
}

// restaurantWithMenu is the public detail view of a restaurant.
type restaurantWithMenu struct {
	models.Restaurant
	Categories []models.CategoryWithDishes `json:"categories"`
}

// GetByID returns a restaurant with its full menu. Public; this backs the
// QR-code menu page.
func (h *RestaurantHandlers) GetByID(c echo.Context) error {
	id := c.Param("id")

	restaurant, err := h.repo.GetRestaurantByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}

	menu, err := h.repo.ListMenu(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "database error"})
	}

	return c.JSON(http.StatusOK, restaurantWithMenu{Restaurant: *restaurant, Categories: menu})
}
