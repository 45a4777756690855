package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/geokit/pkg/geo"
)

// HaversineDistanceTool returns a tool definition for great-circle distance
func HaversineDistanceTool() mcp.Tool {
	return mcp.NewTool("haversine_distance",
		mcp.WithDescription("Calculate the great-circle distance between two points using the haversine formula (Earth radius 6371 km)"),
		mcp.WithString("origin_lat",
			mcp.Required(),
			mcp.Description("Latitude of the origin in decimal degrees or DMS/DDM text"),
		),
		mcp.WithString("origin_lon",
			mcp.Required(),
			mcp.Description("Longitude of the origin in decimal degrees or DMS/DDM text"),
		),
		mcp.WithString("destination_lat",
			mcp.Required(),
			mcp.Description("Latitude of the destination in decimal degrees or DMS/DDM text"),
		),
		mcp.WithString("destination_lon",
			mcp.Required(),
			mcp.Description("Longitude of the destination in decimal degrees or DMS/DDM text"),
		),
		mcp.WithString("unit",
			mcp.Description("Unit of the result: km, m or miles"),
			mcp.Enum(string(geo.Kilometers), string(geo.Meters), string(geo.Miles)),
			mcp.DefaultString(string(geo.Kilometers)),
		),
	)
}

// HandleHaversineDistance implements distance calculation
func (r *Registry) HandleHaversineDistance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", "haversine_distance")

	origin, err := pointArgs(req, "origin_lat", "origin_lon")
	if err != nil {
		return ErrorResult(err), nil
	}
	destination, err := pointArgs(req, "destination_lat", "destination_lon")
	if err != nil {
		return ErrorResult(err), nil
	}
	unit, err := geo.ParseUnit(mcp.ParseString(req, "unit", string(geo.Kilometers)))
	if err != nil {
		return ErrorResult(err), nil
	}

	d, err := geo.Distance(origin, destination, unit)
	if err != nil {
		return ErrorResult(err), nil
	}
	logger.Debug("computed distance", "distance", d, "unit", unit)

	return jsonResult(DistanceOutput{Distance: d, Unit: string(unit)})
}
