package city

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"github.com/NERVsystems/geokit/pkg/geo"
)

// square returns an unclosed rectangular ring from (minLon, minLat) to
// (maxLon, maxLat).
func square(minLon, minLat, maxLon, maxLat float64) orb.Polygon {
	return orb.Polygon{{
		{minLon, minLat}, {maxLon, minLat}, {maxLon, maxLat}, {minLon, maxLat},
	}}
}

// metroVancouver has two adjacent squares sharing the lon -123 edge.
func metroVancouver() *Table {
	return NewTable(NameColumn, GeometryColumn).
		Append(Row{NameColumn: "Vancouver", GeometryColumn: square(-124, 49, -123, 50)}).
		Append(Row{NameColumn: "Burnaby", GeometryColumn: square(-123, 49, -122, 50)})
}

func TestPointToCity(t *testing.T) {
	tests := []struct {
		name      string
		lat, lon  any
		want      string
		wantFound bool
	}{
		{"inside vancouver", 49.5, -123.5, "Vancouver", true},
		{"inside burnaby", 49.6, -122.5, "Burnaby", true},
		{"integer coordinates", 49, -123, "", false},
		{"outside all polygons", 48.5, -123.5, "", false},
		{"shared boundary", 49.5, -123.0, "", false},
		{"outer boundary", 50.0, -123.5, "", false},
		{"vertex", 49.0, -124.0, "", false},
		{"float32", float32(49.5), float32(-123.5), "Vancouver", true},
	}

	table := metroVancouver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found, err := PointToCity(tt.lat, tt.lon, table)
			if err != nil {
				t.Fatalf("PointToCity() error = %v", err)
			}
			if got != tt.want || found != tt.wantFound {
				t.Errorf("PointToCity() = %q, %v; want %q, %v", got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestPointToCityErrors(t *testing.T) {
	noName := NewTable(GeometryColumn).Append(Row{GeometryColumn: square(-124, 49, -123, 50)})
	noColumns := NewTable("population")
	badGeometry := NewTable(GeometryColumn, NameColumn).Append(Row{GeometryColumn: orb.Point{1, 2}, NameColumn: "X"})
	badName := NewTable(GeometryColumn, NameColumn).Append(Row{GeometryColumn: square(0, 0, 1, 1), NameColumn: 7})

	tests := []struct {
		name     string
		lat, lon any
		table    *Table
		want     error
		contains string
	}{
		{"text latitude", "49.5", -123.5, metroVancouver(), geo.ErrType, "numeric"},
		{"text longitude", 49.5, "-123.5", metroVancouver(), geo.ErrType, "numeric"},
		{"nil table", 49.5, -123.5, nil, geo.ErrType, "nil"},
		{"latitude out of range", 91, 0, metroVancouver(), geo.ErrRange, "Latitude"},
		{"longitude out of range", 0, -181, metroVancouver(), geo.ErrRange, "Longitude"},
		{"missing city_name", 49.5, -123.5, noName, geo.ErrSchema, "city_name"},
		{"missing both columns", 49.5, -123.5, noColumns, geo.ErrSchema, "geometry, city_name"},
		{"point geometry", 1.5, 0.5, badGeometry, geo.ErrType, "row 0"},
		{"numeric name", 0.5, 0.5, badName, geo.ErrType, "city_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := PointToCity(tt.lat, tt.lon, tt.table)
			if !errors.Is(err, tt.want) {
				t.Fatalf("PointToCity() error = %v, want %v", err, tt.want)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", err, tt.contains)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	table := NewTable(GeometryColumn, NameColumn).
		Append(Row{GeometryColumn: square(0, 0, 10, 10), NameColumn: "Region"}).
		Append(Row{GeometryColumn: square(2, 2, 4, 4), NameColumn: "Town"})

	got, found, err := PointToCity(3, 3, table)
	if err != nil || !found || got != "Region" {
		t.Errorf("PointToCity() = %q, %v, %v; want first match Region", got, found, err)
	}

	all, err := PointToCities(3, 3, table)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"Region", "Town"}; !reflect.DeepEqual(all, want) {
		t.Errorf("PointToCities() = %v, want %v", all, want)
	}
}

func TestHolesAndMultiPolygons(t *testing.T) {
	donut := orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
	}
	islands := orb.MultiPolygon{square(20, 20, 21, 21), square(30, 30, 31, 31)}

	table := NewTable(GeometryColumn, NameColumn).
		Append(Row{GeometryColumn: donut, NameColumn: "Donut"}).
		Append(Row{GeometryColumn: islands, NameColumn: "Islands"})

	tests := []struct {
		name      string
		lat, lon  float64
		want      string
		wantFound bool
	}{
		{"ring body", 2, 2, "Donut", true},
		{"inside hole", 5, 5, "", false},
		{"on hole edge", 5, 4, "", false},
		{"second island", 30.5, 30.5, "Islands", true},
		{"between islands", 25, 25, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found, err := PointToCity(tt.lat, tt.lon, table)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want || found != tt.wantFound {
				t.Errorf("PointToCity(%v, %v) = %q, %v; want %q, %v", tt.lat, tt.lon, got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	const doc = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature",
     "properties": {"name": "Vancouver", "province": "BC"},
     "geometry": {"type": "Polygon", "coordinates": [[[-124,49],[-123,49],[-123,50],[-124,50],[-124,49]]]}},
    {"type": "Feature",
     "properties": {"name": "Burnaby"},
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[-123,49],[-122,49],[-122,50],[-123,50],[-123,49]]]]}},
    {"type": "Feature",
     "properties": {"name": "Stanley Park Marker"},
     "geometry": {"type": "Point", "coordinates": [-123.14, 49.30]}},
    {"type": "Feature",
     "properties": {},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}}
  ]
}`
	path := filepath.Join(t.TempDir(), "cities.geojson")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	table, skipped, err := LoadFile(path, "")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if table.Len() != 2 || skipped != 2 {
		t.Errorf("LoadFile() rows = %d, skipped = %d; want 2, 2", table.Len(), skipped)
	}
	if !table.HasColumn("province") {
		t.Errorf("columns = %v, want province carried", table.Columns)
	}

	got, found, err := PointToCity(49.5, -122.5, table)
	if err != nil || !found || got != "Burnaby" {
		t.Errorf("PointToCity() = %q, %v, %v; want Burnaby", got, found, err)
	}

	if _, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.geojson"), ""); err == nil {
		t.Error("LoadFile(missing) error = nil")
	}
}
