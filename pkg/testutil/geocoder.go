package testutil

import (
	"context"
	"sync/atomic"

	"github.com/NERVsystems/geokit/pkg/geo"
)

// Geocoder is an in-memory forward and reverse geocoder for tests.
// Lookups missing from the maps report not found. A non-nil error field
// makes every call of that direction fail with it.
type Geocoder struct {
	Places     map[string]geo.Point
	Names      map[geo.Point]string
	GeocodeErr error
	ReverseErr error

	GeocodeCalls atomic.Int32
	ReverseCalls atomic.Int32
}

// Geocode implements a forward lookup by exact name.
func (g *Geocoder) Geocode(_ context.Context, query string) (geo.Point, bool, error) {
	g.GeocodeCalls.Add(1)
	if g.GeocodeErr != nil {
		return geo.Point{}, false, g.GeocodeErr
	}
	p, ok := g.Places[query]
	return p, ok, nil
}

// Reverse implements a reverse lookup by exact point.
func (g *Geocoder) Reverse(_ context.Context, p geo.Point) (string, bool, error) {
	g.ReverseCalls.Add(1)
	if g.ReverseErr != nil {
		return "", false, g.ReverseErr
	}
	name, ok := g.Names[p]
	return name, ok, nil
}
