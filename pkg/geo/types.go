// Package geo provides the coordinate types and pure geodesic calculations
// used across geokit: coordinate parsing, haversine distance, antipodes and
// the ocean fallback classifier.
package geo

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cast"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Point is a validated geographic coordinate in decimal degrees.
//
// Example:
//
//	p, err := geo.NewPoint(49.2827, -123.1207)
//	q := geo.Antipode(p)
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// NewPoint returns a Point after checking that both components are finite
// and within bounds.
func NewPoint(lat, lon float64) (Point, error) {
	p := Point{Lat: lat, Lon: lon}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}

// Validate checks the latitude and longitude bounds.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < MinLatitude || p.Lat > MaxLatitude {
		return Errorf(KindRange, "", "Latitude must be between -90 and 90 degrees. Got %v.", p.Lat)
	}
	if math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) || p.Lon < MinLongitude || p.Lon > MaxLongitude {
		return Errorf(KindRange, "", "Longitude must be between -180 and 180 degrees. Got %v.", p.Lon)
	}
	return nil
}

// String formats the point as "(lat, lon)".
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.Lat, p.Lon)
}

// Number converts a Go numeric value to float64. Text, booleans and every
// other type are rejected with a KindType error; no string parsing happens
// here.
func Number(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f, err := cast.ToFloat64E(n)
		if err != nil {
			return 0, Errorf(KindType, "", "coordinate values must be numeric, got %T", v)
		}
		return f, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, Errorf(KindType, "", "coordinate values must be numeric, got %q", n.String())
		}
		return f, nil
	default:
		return 0, Errorf(KindType, "", "coordinate values must be numeric (int or float), got %T", v)
	}
}

// PointFromPair converts a pair-shaped value into a validated Point.
// Accepted shapes are Point, [2]float64, []float64 and []any of two numbers,
// in (latitude, longitude) order.
func PointFromPair(v any) (Point, error) {
	var elems []any
	switch t := v.(type) {
	case Point:
		return NewPoint(t.Lat, t.Lon)
	case [2]float64:
		return NewPoint(t[0], t[1])
	case []float64:
		elems = make([]any, len(t))
		for i, f := range t {
			elems[i] = f
		}
	case []any:
		elems = t
	default:
		return Point{}, Errorf(KindType, "", "coordinates must be a (latitude, longitude) pair, got %T", v)
	}

	if len(elems) != 2 {
		return Point{}, Errorf(KindType, "", "coordinate pair must have exactly 2 elements, got %d", len(elems))
	}
	lat, err := Number(elems[0])
	if err != nil {
		return Point{}, err
	}
	lon, err := Number(elems[1])
	if err != nil {
		return Point{}, err
	}
	return NewPoint(lat, lon)
}
