package tools

import "github.com/NERVsystems/geokit/pkg/antipode"

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StandardizeOutput is the result of standardize_coordinates.
type StandardizeOutput struct {
	Coordinates
	DMS struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"dms"`
}

// DistanceOutput is the result of haversine_distance.
type DistanceOutput struct {
	Distance float64 `json:"distance"`
	Unit     string  `json:"unit"`
}

// AntipodeOutput is the result of get_antipode.
type AntipodeOutput = antipode.Result

// OceanOutput is the result of classify_ocean.
type OceanOutput struct {
	Ocean string `json:"ocean"`
}

// CityOutput is the result of point_to_city. City is null when no polygon
// contains the point.
type CityOutput struct {
	City *string `json:"city"`
}
