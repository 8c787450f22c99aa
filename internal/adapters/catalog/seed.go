package catalog

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/voyago/voyago/internal/domain/model"
)

// DemoPlaces returns the built-in seed catalog used when no catalog file is
// configured.
func DemoPlaces() []model.Place {
	return []model.Place{
		{
			ID:          "artisan-cafe",
			Name:        "The Artisan Café",
			Description: "Cozy café with artisanal coffee and fresh pastries",
			Category:    model.CategoryRestaurant,
			Coord:       model.Coordinate{Lat: 52.5206, Lng: 13.4094},
			Address:     "123 Coffee Street, Downtown",
			Rating:      4.5, ReviewCount: 127, PriceLevel: 2, OpenNow: true,
			EstimatedDuration: 45,
		},
		{
			ID:          "city-art-museum",
			Name:        "City Art Museum",
			Description: "Contemporary art museum featuring local and international artists",
			Category:    model.CategoryAttraction,
			Coord:       model.Coordinate{Lat: 52.5092, Lng: 13.4164},
			Address:     "456 Culture Avenue, Arts District",
			Rating:      4.8, ReviewCount: 245, PriceLevel: 1, OpenNow: true,
			EstimatedDuration: 120,
		},
		{
			ID:          "sunset-view",
			Name:        "Sunset View Restaurant",
			Description: "Fine dining with panoramic city views and seasonal menu",
			Category:    model.CategoryRestaurant,
			Coord:       model.Coordinate{Lat: 52.5330, Lng: 13.4220},
			Address:     "789 Harbor View, Waterfront",
			Rating:      4.6, ReviewCount: 89, PriceLevel: 3, OpenNow: false,
			EstimatedDuration: 90,
		},
		{
			ID:          "central-park",
			Name:        "Central Park",
			Description: "Beautiful urban park with walking trails and gardens",
			Category:    model.CategoryNature,
			Coord:       model.Coordinate{Lat: 52.5185, Lng: 13.4010},
			Address:     "Central Park Loop, City Center",
			Rating:      4.7, ReviewCount: 312, PriceLevel: 1, OpenNow: true,
			EstimatedDuration: 60,
		},
	}
}

// LoadFile reads a JSON array of places from path.
func LoadFile(path string) ([]model.Place, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	var places []model.Place
	if err := json.Unmarshal(data, &places); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadCatalog, err)
	}
	return places, nil
}
