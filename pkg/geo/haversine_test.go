package geo

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDistance(t *testing.T) {
	// Test cases with known distances
	tests := []struct {
		name      string
		origin    Point
		dest      Point
		unit      Unit
		expected  float64
		tolerance float64 // absolute, in the requested unit
	}{
		{
			name:      "Same point",
			origin:    Point{Lat: 49.2827, Lon: -123.1207},
			dest:      Point{Lat: 49.2827, Lon: -123.1207},
			unit:      Kilometers,
			expected:  0,
			tolerance: 0,
		},
		{
			name:      "Vancouver to Montreal",
			origin:    Point{Lat: 49.2827, Lon: -123.1207},
			dest:      Point{Lat: 45.5017, Lon: -73.5673},
			unit:      Kilometers,
			expected:  3686.32,
			tolerance: 0.01,
		},
		{
			name:      "Vancouver to Montreal in meters",
			origin:    Point{Lat: 49.2827, Lon: -123.1207},
			dest:      Point{Lat: 45.5017, Lon: -73.5673},
			unit:      Meters,
			expected:  3686320.4,
			tolerance: 1,
		},
		{
			name:      "Quarter meridian",
			origin:    Point{Lat: 0, Lon: 0},
			dest:      Point{Lat: 90, Lon: 0},
			unit:      Kilometers,
			expected:  EarthRadiusKm * math.Pi / 2,
			tolerance: 1e-6,
		},
		{
			name:      "Across the date line",
			origin:    Point{Lat: 0, Lon: 179.5},
			dest:      Point{Lat: 0, Lon: -179.5},
			unit:      Kilometers,
			expected:  EarthRadiusKm * math.Pi / 180,
			tolerance: 1e-6,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Distance(tc.origin, tc.dest, tc.unit)
			if err != nil {
				t.Fatalf("Distance() unexpected error: %v", err)
			}
			if math.Abs(result-tc.expected) > tc.tolerance {
				t.Errorf("Distance(%v, %v, %s) = %f, expected %f ± %g",
					tc.origin, tc.dest, tc.unit, result, tc.expected, tc.tolerance)
			}
		})
	}
}

func TestDistanceProperties(t *testing.T) {
	points := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 90, Lon: 0},
		{Lat: -90, Lon: 180},
		{Lat: 49.2827, Lon: -123.1207},
		{Lat: 45.5017, Lon: -73.5673},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 35.6762, Lon: 139.6503},
		{Lat: 0.0001, Lon: -179.9999},
	}

	for _, a := range points {
		d, err := Distance(a, a, Kilometers)
		if err != nil {
			t.Fatalf("Distance(%v, %v) error = %v", a, a, err)
		}
		if d != 0 {
			t.Errorf("Distance(%v, %v) = %f, want 0", a, a, d)
		}

		for _, b := range points {
			ab, _ := Distance(a, b, Kilometers)
			ba, _ := Distance(b, a, Kilometers)
			if math.IsNaN(ab) || math.IsNaN(ba) {
				t.Fatalf("Distance(%v, %v) = %f, %f; want a number", a, b, ab, ba)
			}
			if ab < 0 {
				t.Errorf("Distance(%v, %v) = %f, want non-negative", a, b, ab)
			}
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("Distance not symmetric for %v, %v: %f vs %f", a, b, ab, ba)
			}
		}
	}
}

func TestDistanceToAntipode(t *testing.T) {
	halfCircumference := math.Pi * EarthRadiusKm

	for lat := -90.0; lat <= 90; lat += 2.5 {
		for lon := -180.0; lon <= 180; lon += 2.5 {
			p := Point{Lat: lat, Lon: lon}
			d, err := Distance(p, Antipode(p), Kilometers)
			if err != nil {
				t.Fatalf("Distance(%v, antipode) error = %v", p, err)
			}
			if math.IsNaN(d) || math.Abs(d-halfCircumference) > 1e-3 {
				t.Fatalf("Distance(%v, %v) = %f, want %f", p, Antipode(p), d, halfCircumference)
			}
		}
	}

	d, err := Distance(Point{Lat: 10, Lon: 20}, Point{Lat: -10, Lon: -160}, Kilometers)
	if err != nil || math.IsNaN(d) {
		t.Errorf("Distance((10, 20), (-10, -160)) = %f, %v", d, err)
	}
}

func TestDistanceUnitConversion(t *testing.T) {
	a := Point{Lat: 45.0, Lon: -75.0}
	b := Point{Lat: 46.0, Lon: -76.0}

	km, err := Distance(a, b, Kilometers)
	if err != nil {
		t.Fatalf("Distance() error = %v", err)
	}
	m, _ := Distance(a, b, Meters)
	mi, _ := Distance(a, b, Miles)

	if math.Abs(m-km*1000)/m > 1e-3 {
		t.Errorf("meters = %f, want %f", m, km*1000)
	}
	if math.Abs(mi-km*0.621371)/mi > 1e-3 {
		t.Errorf("miles = %f, want %f", mi, km*0.621371)
	}
}

func TestDistanceErrors(t *testing.T) {
	valid := Point{Lat: 0, Lon: 0}

	t.Run("latitude out of range", func(t *testing.T) {
		_, err := Distance(Point{Lat: 91, Lon: 0}, valid, Kilometers)
		if !errors.Is(err, ErrRange) {
			t.Fatalf("expected range error, got %v", err)
		}
		if !strings.Contains(err.Error(), "Latitude") {
			t.Errorf("error %q does not name the latitude", err)
		}
	})

	t.Run("longitude out of range", func(t *testing.T) {
		_, err := Distance(valid, Point{Lat: 0, Lon: -181}, Kilometers)
		if !errors.Is(err, ErrRange) {
			t.Fatalf("expected range error, got %v", err)
		}
		if !strings.Contains(err.Error(), "Longitude") {
			t.Errorf("error %q does not name the longitude", err)
		}
	})

	t.Run("unsupported unit", func(t *testing.T) {
		_, err := Distance(valid, Point{Lat: 1, Lon: 1}, Unit("lightyears"))
		if !errors.Is(err, ErrRange) {
			t.Fatalf("expected range error, got %v", err)
		}
	})

	t.Run("NaN coordinate", func(t *testing.T) {
		_, err := Distance(Point{Lat: math.NaN(), Lon: 0}, valid, Kilometers)
		if !errors.Is(err, ErrRange) {
			t.Fatalf("expected range error, got %v", err)
		}
	})
}

func TestDistanceBetween(t *testing.T) {
	tests := []struct {
		name    string
		origin  any
		dest    any
		unit    string
		wantErr error
	}{
		{name: "slice of any", origin: []any{49.2, -123.1}, dest: []any{45.5, -73.5}, unit: "km"},
		{name: "float slice", origin: []float64{49.2, -123.1}, dest: [2]float64{45.5, -73.5}, unit: "miles"},
		{name: "integer elements", origin: []any{49, -123}, dest: []any{45, -73}, unit: ""},
		{name: "empty pair", origin: []any{}, dest: []any{45.5, -73.5}, unit: "km", wantErr: ErrType},
		{name: "single element", origin: []any{49.2}, dest: []any{45.5, -73.5}, unit: "km", wantErr: ErrType},
		{name: "three elements", origin: []any{49.2, -123.1, 500.0}, dest: []any{45.5, -73.5}, unit: "km", wantErr: ErrType},
		{name: "not a pair", origin: "49.2,-123.1", dest: []any{45.5, -73.5}, unit: "km", wantErr: ErrType},
		{name: "text element", origin: []any{"string", -123.1}, dest: []any{45.5, -73.5}, unit: "km", wantErr: ErrType},
		{name: "latitude too high", origin: []any{91.0, 0.0}, dest: []any{0.0, 0.0}, unit: "km", wantErr: ErrRange},
		{name: "bad unit", origin: []any{0.0, 0.0}, dest: []any{1.0, 1.0}, unit: "lightyears", wantErr: ErrRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := DistanceBetween(tt.origin, tt.dest, tt.unit)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("DistanceBetween() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DistanceBetween() unexpected error: %v", err)
			}
			if d <= 0 {
				t.Errorf("DistanceBetween() = %f, want positive", d)
			}
		})
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    Unit
		wantErr bool
	}{
		{"", Kilometers, false},
		{"km", Kilometers, false},
		{"M", Meters, false},
		{" miles ", Miles, false},
		{"feet", "", true},
	}
	for _, tt := range tests {
		got, err := ParseUnit(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseUnit(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseUnit(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
