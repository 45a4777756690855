package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/geokit/pkg/geo"
)

// StandardizeCoordinatesTool returns a tool definition for normalizing coordinates
func StandardizeCoordinatesTool() mcp.Tool {
	return mcp.NewTool("standardize_coordinates",
		mcp.WithDescription("Convert a latitude/longitude pair given as decimal degrees, DMS (34°3'8\"N) or DDM (34°3.133'N) into signed decimal degrees"),
		mcp.WithString("latitude",
			mcp.Required(),
			mcp.Description("Latitude as decimal degrees or DMS/DDM text with an N or S hemisphere"),
		),
		mcp.WithString("longitude",
			mcp.Required(),
			mcp.Description("Longitude as decimal degrees or DMS/DDM text with an E or W hemisphere"),
		),
	)
}

// HandleStandardizeCoordinates implements coordinate normalization
func (r *Registry) HandleStandardizeCoordinates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", "standardize_coordinates")

	p, err := pointArgs(req, "latitude", "longitude")
	if err != nil {
		logger.Debug("invalid coordinates", "error", err)
		return ErrorResult(err), nil
	}

	var output StandardizeOutput
	output.Coordinates = Coordinates{Latitude: p.Lat, Longitude: p.Lon}
	output.DMS.Latitude = geo.FormatDMS(p.Lat, geo.Latitude)
	output.DMS.Longitude = geo.FormatDMS(p.Lon, geo.Longitude)

	return jsonResult(output)
}

// argument returns the raw value of a required argument.
func argument(req mcp.CallToolRequest, name string) (any, error) {
	v, ok := req.Params.Arguments[name]
	if !ok || v == nil {
		return nil, geo.Errorf(geo.KindType, "", "%s is required", name)
	}
	return v, nil
}

// pointArgs reads a latitude/longitude argument pair in any accepted
// coordinate format and validates it.
func pointArgs(req mcp.CallToolRequest, latName, lonName string) (geo.Point, error) {
	lat, err := argument(req, latName)
	if err != nil {
		return geo.Point{}, err
	}
	lon, err := argument(req, lonName)
	if err != nil {
		return geo.Point{}, err
	}
	return geo.Standardize(lat, lon)
}

// logAttrs is shared by handlers that log a resolved point.
func logAttrs(p geo.Point) []any {
	return []any{slog.Float64("lat", p.Lat), slog.Float64("lon", p.Lon)}
}
