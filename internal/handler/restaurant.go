package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// RestaurantStore is the read-only catalog the browse endpoints consume.
type RestaurantStore interface {
	List(ctx context.Context) ([]model.Restaurant, error)
	SearchByName(ctx context.Context, fragment string) ([]model.Restaurant, error)
}

// RestaurantHandler serves the unauthenticated restaurant catalog.
type RestaurantHandler struct {
	Restaurants RestaurantStore
}

func NewRestaurantHandler(r RestaurantStore) *RestaurantHandler {
	return &RestaurantHandler{Restaurants: r}
}

// restaurantItem is the wire shape of a catalog entry. The image URL is
// derived from the stored photo filename and the static images prefix.
type restaurantItem struct {
	RestaurantID uint64 `json:"restaurant_id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Photographs  string `json:"photographs"`
	Image        string `json:"image"`
}

func toRestaurantItems(in []model.Restaurant) []restaurantItem {
	out := make([]restaurantItem, 0, len(in))
	for _, m := range in {
		out = append(out, restaurantItem{
			RestaurantID: m.ID,
			Name:         m.Name,
			Location:     m.Location,
			Description:  m.Description,
			Photographs:  m.Photographs,
			Image:        "/images/" + m.Photographs,
		})
	}
	return out
}

// List handles GET /api/restaurants. No auth, no pagination: the whole
// catalog comes back in one response.
func (h *RestaurantHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Restaurants.List(ctx)
	if err != nil {
		c.Logger().Errorf("restaurants: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error fetching restaurants"})
	}
	return c.JSON(http.StatusOK, toRestaurantItems(items))
}

// Search handles GET /api/users/restaurants/search?name=. It performs a
// case-insensitive substring match on restaurant names. An empty
// fragment matches everything, same as the full listing.
func (h *RestaurantHandler) Search(c echo.Context) error {
	fragment := strings.TrimSpace(c.QueryParam("name"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Restaurants.SearchByName(ctx, fragment)
	if err != nil {
		c.Logger().Errorf("restaurants: search %q: %v", fragment, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error searching for restaurants."})
	}
	return c.JSON(http.StatusOK, toRestaurantItems(items))
}
