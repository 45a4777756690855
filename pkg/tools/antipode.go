package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/geokit/pkg/antipode"
	"github.com/NERVsystems/geokit/pkg/geo"
)

// GetAntipodeTool returns a tool definition for antipode lookup
func GetAntipodeTool() mcp.Tool {
	return mcp.NewTool("get_antipode",
		mcp.WithDescription("Find the antipode (diametrically opposite point) of a place name or coordinate, and describe what is there"),
		mcp.WithString("location",
			mcp.Description("Place name to geocode, e.g. \"Madrid, Spain\". Omit when latitude and longitude are given"),
		),
		mcp.WithString("latitude",
			mcp.Description("Latitude of the starting point in decimal degrees or DMS/DDM text, used when location is omitted"),
		),
		mcp.WithString("longitude",
			mcp.Description("Longitude of the starting point in decimal degrees or DMS/DDM text, used when location is omitted"),
		),
		mcp.WithBoolean("resolve_names",
			mcp.Description("Reverse geocode the antipode; falls back to the ocean name when nothing is there"),
			mcp.DefaultBool(true),
		),
	)
}

// HandleGetAntipode implements antipode lookup
func (r *Registry) HandleGetAntipode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", "get_antipode")

	if r.antipode == nil {
		return ErrorResponse("Antipode service is not configured"), nil
	}

	var loc antipode.Location
	if raw, ok := req.Params.Arguments["location"]; ok && raw != nil {
		l, err := antipode.ParseLocation(raw)
		if err != nil {
			return ErrorResult(err), nil
		}
		loc = l
	} else {
		p, err := pointArgs(req, "latitude", "longitude")
		if err != nil {
			return ErrorResult(err), nil
		}
		loc = antipode.Coordinates(p)
	}

	resolveNames := mcp.ParseBoolean(req, "resolve_names", true)

	result, err := r.antipode.Resolve(ctx, loc, resolveNames)
	if err != nil {
		logger.Info("antipode lookup failed", "location", loc.String(), "error", err)
		return ErrorResult(err), nil
	}
	logger.Debug("resolved antipode", logAttrs(result.Point)...)

	return jsonResult(AntipodeOutput(result))
}

// ClassifyOceanTool returns a tool definition for the ocean classifier
func ClassifyOceanTool() mcp.Tool {
	return mcp.NewTool("classify_ocean",
		mcp.WithDescription("Name the ocean (Southern, Arctic, Pacific, Atlantic or Indian) for a coordinate using a coarse latitude/longitude decision tree"),
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

// HandleClassifyOcean implements ocean classification
func (r *Registry) HandleClassifyOcean(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := pointArgs(req, "latitude", "longitude")
	if err != nil {
		return ErrorResult(err), nil
	}
	return jsonResult(OceanOutput{Ocean: geo.ClassifyOcean(p).String()})
}
