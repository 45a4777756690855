package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/geokit/pkg/city"
)

// PointToCityTool returns a tool definition for city polygon lookup
func PointToCityTool() mcp.Tool {
	return mcp.NewTool("point_to_city",
		mcp.WithDescription("Find which configured city polygon contains a coordinate. Points exactly on a boundary belong to no city"),
		mcp.WithString("latitude",
			mcp.Required(),
			mcp.Description("Latitude in decimal degrees or DMS/DDM text"),
		),
		mcp.WithString("longitude",
			mcp.Required(),
			mcp.Description("Longitude in decimal degrees or DMS/DDM text"),
		),
	)
}

// HandlePointToCity implements city lookup
func (r *Registry) HandlePointToCity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", "point_to_city")

	if r.cities == nil {
		return ErrorResponse("No cities dataset is configured"), nil
	}

	p, err := pointArgs(req, "latitude", "longitude")
	if err != nil {
		return ErrorResult(err), nil
	}

	name, found, err := city.PointToCity(p.Lat, p.Lon, r.cities)
	if err != nil {
		logger.Error("city lookup failed", "error", err)
		return ErrorResult(err), nil
	}

	var output CityOutput
	if found {
		output.City = &name
	}
	logger.Debug("city lookup", append(logAttrs(p), "found", found)...)
	return jsonResult(output)
}
