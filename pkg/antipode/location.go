package antipode

import (
	"strings"

	"github.com/NERVsystems/geokit/pkg/geo"
)

type locationKind int

const (
	kindPlace locationKind = iota + 1
	kindCoordinates
)

// Location is either a place name to be geocoded or a coordinate pair.
// Build one with Place, Coordinates or ParseLocation.
type Location struct {
	kind  locationKind
	name  string
	point geo.Point
}

// Place returns a Location that is resolved by forward geocoding name.
func Place(name string) Location {
	return Location{kind: kindPlace, name: name}
}

// Coordinates returns a Location for an explicit point.
func Coordinates(p geo.Point) Location {
	return Location{kind: kindCoordinates, point: p}
}

// ParseLocation builds a Location from loosely typed input: text is a place
// name, anything pair-shaped is a (latitude, longitude) pair.
func ParseLocation(v any) (Location, error) {
	if s, ok := v.(string); ok {
		return Place(s), nil
	}
	switch v.(type) {
	case geo.Point, [2]float64, []float64, []any:
		p, err := geo.PointFromPair(v)
		if err != nil {
			return Location{}, err
		}
		return Coordinates(p), nil
	}
	return Location{}, geo.Errorf(geo.KindType, "antipode",
		"location must be a string or a (latitude, longitude) pair, got %T", v)
}

// IsPlace reports whether the location is a place name.
func (l Location) IsPlace() bool { return l.kind == kindPlace }

// Name returns the place name, or "" for coordinates.
func (l Location) Name() string { return l.name }

// Point returns the coordinates, or the zero Point for a place name.
func (l Location) Point() geo.Point { return l.point }

func (l Location) String() string {
	switch l.kind {
	case kindPlace:
		return "place " + strings.TrimSpace(l.name)
	case kindCoordinates:
		return l.point.String()
	default:
		return "empty location"
	}
}
