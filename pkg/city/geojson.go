package city

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DefaultNameProperty is the feature property holding the city name.
const DefaultNameProperty = "name"

// FromFeatureCollection builds a Table from the polygon features of fc. The
// city name is read from nameProperty (DefaultNameProperty when empty). Other
// properties become extra columns. Features that are not polygons or
// multipolygons, or that lack a text name, are skipped and counted.
func FromFeatureCollection(fc *geojson.FeatureCollection, nameProperty string) (*Table, int, error) {
	if fc == nil {
		return nil, 0, errors.New("nil feature collection")
	}
	if nameProperty == "" {
		nameProperty = DefaultNameProperty
	}

	extra := map[string]struct{}{}
	t := NewTable(GeometryColumn, NameColumn)
	skipped := 0

	for _, f := range fc.Features {
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			skipped++
			continue
		}
		name, ok := f.Properties[nameProperty].(string)
		if !ok || name == "" {
			skipped++
			continue
		}

		row := Row{GeometryColumn: f.Geometry, NameColumn: name}
		for k, v := range f.Properties {
			if k == nameProperty || k == GeometryColumn || k == NameColumn {
				continue
			}
			row[k] = v
			extra[k] = struct{}{}
		}
		t.Append(row)
	}

	cols := make([]string, 0, len(extra))
	for k := range extra {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	t.Columns = append(t.Columns, cols...)

	return t, skipped, nil
}

// LoadFile reads a GeoJSON FeatureCollection from path.
func LoadFile(path, nameProperty string) (*Table, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read cities file: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, 0, fmt.Errorf("parse cities file %s: %w", path, err)
	}
	return FromFeatureCollection(fc, nameProperty)
}
