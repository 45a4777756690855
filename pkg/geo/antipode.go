package geo

import "math"

// Antipode returns the point diametrically opposite p, rounded to four
// decimal places. Longitudes wrap without a modulo so the result stays in
// [-180, 180]. Longitudes 180 and -180 are the same meridian: the antipode of
// the antipode of (lat, 180) is (lat, -180).
func Antipode(p Point) Point {
	lon := p.Lon + 180
	if p.Lon >= 0 {
		lon = p.Lon - 180
	}
	return Point{
		Lat: round4(-p.Lat),
		Lon: round4(lon),
	}
}

func round4(v float64) float64 {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}
