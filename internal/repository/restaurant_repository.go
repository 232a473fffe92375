package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// RestaurantRepo reads the restaurants catalog. The catalog is
// read-only to this service; rows are seeded out of band.
type RestaurantRepo struct{ DB *sql.DB }

func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{DB: db} }

const restaurantCols = "restaurant_id,name,location,description,photographs"

// List returns every restaurant. No pagination: the catalog is small
// and the full set feeds the browse screen in one response.
func (r *RestaurantRepo) List(ctx context.Context) ([]model.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+restaurantCols+" FROM restaurants ORDER BY restaurant_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRestaurants(rows)
}

// SearchByName returns restaurants whose name contains the fragment,
// case-insensitively (LIKE under the default collation).
func (r *RestaurantRepo) SearchByName(ctx context.Context, fragment string) ([]model.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+restaurantCols+" FROM restaurants WHERE name LIKE ? ORDER BY restaurant_id",
		"%"+fragment+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRestaurants(rows)
}

func scanRestaurants(rows *sql.Rows) ([]model.Restaurant, error) {
	out := make([]model.Restaurant, 0, 16)
	for rows.Next() {
		var m model.Restaurant
		var desc sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &m.Location, &desc, &m.Photographs); err != nil {
			return nil, err
		}
		m.Description = desc.String
		out = append(out, m)
	}
	return out, rows.Err()
}
