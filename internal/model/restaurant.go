package model

// Restaurant is a row of the read-only `restaurants` catalog. The core
// never mutates restaurants; they feed the catalog screen and supply
// restaurant identifiers to the reservation flow.
//
// Photographs holds the filename of the restaurant photo; the public
// image URL is derived by prefixing the static images path.
type Restaurant struct {
	ID          uint64 // restaurants.restaurant_id
	Name        string // restaurants.name
	Location    string // restaurants.location
	Description string // restaurants.description
	Photographs string // restaurants.photographs
}
