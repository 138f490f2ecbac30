// Copyright 2026 The QRMenu Authors
// Licensed under the EUPL-1.2

package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/qrmenu/qrmenu-server/internal/handlers"
	"codeberg.org/qrmenu/qrmenu-server/internal/models"
	"codeberg.org/qrmenu/qrmenu-server/internal/repository"
	"codeberg.org/qrmenu/qrmenu-server/internal/testutil"
)

func newTestRestaurantHandlers(t *testing.T) (*handlers.RestaurantHandlers, *repository.Repository) {
	t.Helper()
	testutil.InitI18n(t)
	_, repo := testutil.NewTestDB(t)
	return handlers.NewRestaurant(repo), repo
}

func TestCreateRestaurant(t *testing.T) {
	h, repo := newTestRestaurantHandlers(t)

	user := testutil.NewTestUser(t, repo, "owner@example.com", "123456")

	e := echo.New()
	body := strings.NewReader(`{"name":"Curry Corner","location":"Berlin"}`)
	c, rec := testutil.NewEchoContext(e, http.MethodPost, "/api/restaurants", body)
	withIdentity(c, user)

	err := h.Create(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created models.Restaurant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Curry Corner", created.Name)
	assert.Equal(t, user.ID, created.OwnerID)
	assert.NotEmpty(t, created.ID)
}

func TestCreateRestaurant_ShortName(t *testing.T) {
	h, repo := newTestRestaurantHandlers(t)

	user := testutil.NewTestUser(t, repo, "owner@example.com", "123456")

	e := echo.New()
	body := strings.NewReader(`{"name":"X","location":"Berlin"}`)
	c, rec := testutil.NewEchoContext(e, http.MethodPost, "/api/restaurants", body)
	withIdentity(c, user)

	err := h.Create(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMine_OnlyOwnRestaurants(t *testing.T) {
	h, repo := newTestRestaurantHandlers(t)

	owner := testutil.NewTestUser(t, repo, "owner@example.com", "123456")
	other := testutil.NewTestUser(t, repo, "other@example.com", "654321")
	mine := testutil.NewTestRestaurant(t, repo, owner.ID)
	testutil.NewTestRestaurant(t, repo, other.ID)

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/api/restaurants", nil)
	withIdentity(c, owner)

	err := h.ListMine(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var restaurants []models.Restaurant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &restaurants))
	require.Len(t, restaurants, 1)
	assert.Equal(t, mine.ID, restaurants[0].ID)
}

func TestListPublic_OmitsOwner(t *testing.T) {
	h, repo := newTestRestaurantHandlers(t)

	owner := testutil.NewTestUser(t, repo, "owner@example.com", "123456")
	testutil.NewTestRestaurant(t, repo, owner.ID)

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/api/restaurants/public", nil)

	err := h.ListPublic(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "owner_id")
	assert.Contains(t, rec.Body.String(), `"name":"Test Restaurant"`)
}

func TestGetByID_WithMenu(t *testing.T) {
	h, repo := newTestRestaurantHandlers(t)

	owner := testutil.NewTestUser(t, repo, "owner@example.com", "123456")
	restaurant := testutil.NewTestRestaurant(t, repo, owner.ID)
	category, err := repo.CreateCategory(t.Context(), "Starters", restaurant.ID)
	require.NoError(t, err)
	_, err = repo.CreateDish(t.Context(), repository.NewDishParams{
		Name:         "Samosa",
		Price:        3.5,
		IsVeg:        true,
		RestaurantID: restaurant.ID,
		CategoryIDs:  []string{category.ID},
	})
	require.NoError(t, err)

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/api/restaurants/"+restaurant.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(restaurant.ID)

	err = h.GetByID(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Samosa"`)
	assert.Contains(t, rec.Body.String(), `"name":"Starters"`)
}

func TestGetByID_NotFound(t *testing.T) {
	h, _ := newTestRestaurantHandlers(t)

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/api/restaurants/no-such-id", nil)
	c.SetParamNames("id")
	c.SetParamValues("no-such-id")

	err := h.GetByID(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
