package geo

import (
	"math"
	"strings"
)

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// Unit is a distance unit accepted by Distance.
type Unit string

const (
	Kilometers Unit = "km"
	Meters     Unit = "m"
	Miles      Unit = "miles"
)

// kilometer multipliers
var unitFactors = map[Unit]float64{
	Kilometers: 1,
	Meters:     1000,
	Miles:      0.621371,
}

// ParseUnit maps unit text to a Unit. An empty string means kilometers.
func ParseUnit(s string) (Unit, error) {
	if s == "" {
		return Kilometers, nil
	}
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := unitFactors[u]; !ok {
		return "", Errorf(KindRange, "distance", "unsupported unit %q: must be one of km, m, miles", s)
	}
	return u, nil
}

// Distance returns the great-circle distance between two points using the
// haversine formula on a sphere of radius EarthRadiusKm.
func Distance(origin, destination Point, unit Unit) (float64, error) {
	if err := origin.Validate(); err != nil {
		return 0, err
	}
	if err := destination.Validate(); err != nil {
		return 0, err
	}
	factor, ok := unitFactors[unit]
	if !ok {
		return 0, Errorf(KindRange, "distance", "unsupported unit %q: must be one of km, m, miles", string(unit))
	}
	return haversineKm(origin, destination) * factor, nil
}

// DistanceBetween is Distance over pair-shaped input such as []any{lat, lon}.
func DistanceBetween(origin, destination any, unit string) (float64, error) {
	a, err := PointFromPair(origin)
	if err != nil {
		return 0, err
	}
	b, err := PointFromPair(destination)
	if err != nil {
		return 0, err
	}
	u, err := ParseUnit(unit)
	if err != nil {
		return 0, err
	}
	return Distance(a, b, u)
}

func haversineKm(p, q Point) float64 {
	lat1 := toRadians(p.Lat)
	lat2 := toRadians(q.Lat)
	dLat := lat2 - lat1
	dLon := toRadians(q.Lon) - toRadians(p.Lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push a just past 1 for antipodal points.
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
