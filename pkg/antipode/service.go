// Package antipode computes antipodal points for place names or coordinates
// and describes what lies there, falling back to an ocean name when the
// reverse geocoder finds nothing.
package antipode

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/NERVsystems/geokit/pkg/geo"
	"github.com/NERVsystems/geokit/pkg/metrics"
	"github.com/NERVsystems/geokit/pkg/nominatim"
)

// Unavailable is the description used when reverse geocoding fails.
const Unavailable = "Unknown (geocoding service unavailable)"

// Geocoder resolves a place name to coordinates. found is false, with a nil
// error, when the service has no match.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (p geo.Point, found bool, err error)
}

// ReverseGeocoder names the place at a point. found is false, with a nil
// error, when nothing is there.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, p geo.Point) (name string, found bool, err error)
}

// Result is an antipode and an optional description of it.
type Result struct {
	Point       geo.Point `json:"antipode"`
	Description *string   `json:"description"`
}

// Service resolves antipodes. It holds no mutable state and is safe for
// concurrent use when its geocoders are.
type Service struct {
	geocoder Geocoder
	reverse  ReverseGeocoder
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for absorbed reverse geocoding failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a Service. Either geocoder may be nil: place names then
// fail to resolve and descriptions report the service as unavailable.
func NewService(geocoder Geocoder, reverse ReverseGeocoder, opts ...Option) *Service {
	s := &Service{
		geocoder: geocoder,
		reverse:  reverse,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "antipode")
	return s
}

// Resolve finds the antipode of loc. A place name is geocoded exactly once;
// failures there are KindLookup errors. Reverse geocoding failures never
// fail the call, see Describe.
func (s *Service) Resolve(ctx context.Context, loc Location, resolveNames bool) (Result, error) {
	p, err := s.locate(ctx, loc)
	if err != nil {
		return Result{}, err
	}

	a := geo.Antipode(p)
	return Result{
		Point:       a,
		Description: s.Describe(ctx, a, resolveNames),
	}, nil
}

func (s *Service) locate(ctx context.Context, loc Location) (geo.Point, error) {
	switch {
	case loc.IsPlace():
		name := strings.TrimSpace(loc.Name())
		if name == "" {
			return geo.Point{}, geo.Errorf(geo.KindLookup, "antipode", "Could not geocode location: ''")
		}
		if s.geocoder == nil {
			return geo.Point{}, geo.Errorf(geo.KindLookup, "antipode", "Geocoding service error: no geocoder configured")
		}
		p, found, err := s.geocoder.Geocode(ctx, name)
		if err != nil {
			// Only the message and recovery guidance cross this boundary.
			msg := err.Error()
			var apiErr *nominatim.APIError
			if errors.As(err, &apiErr) {
				s.logger.Warn("geocoding failed", "location", name, "recoverable", apiErr.Recoverable, "error", err)
				if apiErr.Guidance != "" {
					msg += ". " + apiErr.Guidance
				}
			}
			return geo.Point{}, geo.Errorf(geo.KindLookup, "antipode", "Geocoding service error: %s", msg)
		}
		if !found {
			return geo.Point{}, geo.Errorf(geo.KindLookup, "antipode", "Could not geocode location: '%s'", name)
		}
		return geo.NewPoint(p.Lat, p.Lon)
	case loc.kind == kindCoordinates:
		p := loc.Point()
		if err := p.Validate(); err != nil {
			return geo.Point{}, err
		}
		return p, nil
	default:
		return geo.Point{}, geo.Errorf(geo.KindType, "antipode", "location must be a string or a (latitude, longitude) pair")
	}
}

// Describe names the place at p. It returns nil when resolveNames is false,
// the reverse geocoder's name on success, the ocean at p when the geocoder
// finds nothing, and Unavailable when the geocoder fails.
func (s *Service) Describe(ctx context.Context, p geo.Point, resolveNames bool) *string {
	if !resolveNames {
		metrics.AntipodeDescriptions.WithLabelValues("none").Inc()
		return nil
	}

	var (
		name  string
		found bool
		err   error
	)
	if s.reverse == nil {
		err = errNoReverseGeocoder
	} else {
		name, found, err = s.reverse.Reverse(ctx, p)
	}

	desc, source := descriptionFor(p, name, found, err)
	if err != nil {
		s.logger.Warn("reverse geocoding failed", "point", p.String(), "error", err)
	}
	metrics.AntipodeDescriptions.WithLabelValues(source).Inc()
	return &desc
}

var errNoReverseGeocoder = errors.New("no reverse geocoder configured")

// descriptionFor maps one reverse geocoding outcome to a description and
// the metrics source label. Timeouts and other failures share a description
// but are counted apart.
func descriptionFor(p geo.Point, name string, found bool, err error) (string, string) {
	var apiErr *nominatim.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Timeout():
		return Unavailable, "timeout"
	case err != nil:
		return Unavailable, "unavailable"
	case !found:
		return geo.ClassifyOcean(p).String(), "ocean"
	default:
		return name, "place"
	}
}
