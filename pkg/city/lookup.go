package city

import (
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/NERVsystems/geokit/pkg/geo"
)

// edgeEpsilon is the collinearity tolerance, in squared degrees, for a
// point to count as lying on a polygon edge.
const edgeEpsilon = 1e-12

// PointToCity returns the name of the first city in table whose polygon
// strictly contains (lat, lon). Points on a polygon boundary belong to no
// city. found is false when no polygon contains the point.
//
// lat and lon must be Go numeric values; text is rejected rather than
// parsed. Overlapping polygons resolve to the first match in table order.
func PointToCity(lat, lon any, table *Table) (name string, found bool, err error) {
	err = scan(lat, lon, table, func(n string) bool {
		name, found = n, true
		return false
	})
	return name, found, err
}

// PointToCities returns every city in table whose polygon strictly
// contains (lat, lon), in table order.
func PointToCities(lat, lon any, table *Table) ([]string, error) {
	var names []string
	err := scan(lat, lon, table, func(n string) bool {
		names = append(names, n)
		return true
	})
	return names, err
}

// scan validates its inputs and calls yield for each containing row until
// yield returns false.
func scan(lat, lon any, table *Table, yield func(name string) bool) error {
	const op = "point_to_city"

	if table == nil {
		return geo.Errorf(geo.KindType, op, "cities table must not be nil")
	}

	latF, latErr := geo.Number(lat)
	lonF, lonErr := geo.Number(lon)
	if latErr != nil || lonErr != nil {
		return geo.Errorf(geo.KindType, op, "lat and lon must be numeric (int or float), got %T and %T", lat, lon)
	}

	p, err := geo.NewPoint(latF, lonF)
	if err != nil {
		return err
	}

	if missing := table.missingColumns(); len(missing) > 0 {
		return geo.Errorf(geo.KindSchema, op, "cities table must contain 'geometry' and 'city_name' columns, missing: %s",
			strings.Join(missing, ", "))
	}

	pt := orb.Point{p.Lon, p.Lat}
	for i, row := range table.Rows {
		g, name, err := readRow(i, row)
		if err != nil {
			return err
		}
		if containsStrict(g, pt) && !yield(name) {
			return nil
		}
	}
	return nil
}

func readRow(i int, row Row) (orb.Geometry, string, error) {
	const op = "point_to_city"

	var g orb.Geometry
	switch v := row[GeometryColumn].(type) {
	case orb.Polygon:
		g = v
	case orb.MultiPolygon:
		g = v
	default:
		return nil, "", geo.Errorf(geo.KindType, op, "row %d: geometry must be a polygon or multipolygon, got %T", i, v)
	}

	name, ok := row[NameColumn].(string)
	if !ok {
		return nil, "", geo.Errorf(geo.KindType, op, "row %d: city_name must be text, got %T", i, row[NameColumn])
	}
	return g, name, nil
}

// containsStrict reports whether pt lies in the interior of g.
func containsStrict(g orb.Geometry, pt orb.Point) bool {
	switch g := g.(type) {
	case orb.Polygon:
		return polygonContainsStrict(g, pt)
	case orb.MultiPolygon:
		for _, poly := range g {
			if polygonContainsStrict(poly, pt) {
				return true
			}
		}
	}
	return false
}

func polygonContainsStrict(poly orb.Polygon, pt orb.Point) bool {
	if len(poly) == 0 || !poly.Bound().Contains(pt) {
		return false
	}
	for _, ring := range poly {
		if onRing(ring, pt) {
			return false
		}
	}
	return planar.PolygonContains(poly, pt)
}

// onRing reports whether pt lies on any edge of r, including the closing
// edge of an unclosed ring.
func onRing(r orb.Ring, pt orb.Point) bool {
	n := len(r)
	if n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if onSegment(r[i], r[(i+1)%n], pt) {
			return true
		}
	}
	return false
}

func onSegment(a, b, p orb.Point) bool {
	cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
	if math.Abs(cross) > edgeEpsilon {
		return false
	}
	return p[0] >= math.Min(a[0], b[0]) && p[0] <= math.Max(a[0], b[0]) &&
		p[1] >= math.Min(a[1], b[1]) && p[1] <= math.Max(a[1], b[1])
}
