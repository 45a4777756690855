// Package tools provides the geokit MCP tool implementations.
package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/NERVsystems/geokit/pkg/antipode"
	"github.com/NERVsystems/geokit/pkg/city"
	"github.com/NERVsystems/geokit/pkg/metrics"
)

// ToolHandler is the signature shared by every tool handler.
type ToolHandler func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Registry holds the geokit tools and the collaborators they need.
type Registry struct {
	logger   *slog.Logger
	antipode *antipode.Service
	cities   *city.Table
}

// NewRegistry creates a new MCP tool registry. cities may be nil, in which
// case point_to_city is not offered.
func NewRegistry(logger *slog.Logger, svc *antipode.Service, cities *city.Table) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:   logger,
		antipode: svc,
		cities:   cities,
	}
}

// ToolDefinition represents a geokit MCP tool definition.
type ToolDefinition struct {
	Name        string
	Description string
	Tool        mcp.Tool
	Handler     ToolHandler
}

// GetToolDefinitions returns all geokit MCP tool definitions.
func (r *Registry) GetToolDefinitions() []ToolDefinition {
	defs := []ToolDefinition{
		// Coordinate Tools
		{
			Name:        "standardize_coordinates",
			Description: "Convert decimal, DMS or DDM coordinates to signed decimal degrees",
			Tool:        StandardizeCoordinatesTool(),
			Handler:     r.HandleStandardizeCoordinates,
		},
		{
			Name:        "haversine_distance",
			Description: "Great-circle distance between two coordinates",
			Tool:        HaversineDistanceTool(),
			Handler:     r.HandleHaversineDistance,
		},

		// Antipode Tools
		{
			Name:        "get_antipode",
			Description: "Find the point diametrically opposite a place or coordinate",
			Tool:        GetAntipodeTool(),
			Handler:     r.HandleGetAntipode,
		},
		{
			Name:        "classify_ocean",
			Description: "Name the ocean a coordinate falls in",
			Tool:        ClassifyOceanTool(),
			Handler:     r.HandleClassifyOcean,
		},
	}

	if r.cities != nil {
		defs = append(defs, ToolDefinition{
			Name:        "point_to_city",
			Description: "Find the city polygon containing a coordinate",
			Tool:        PointToCityTool(),
			Handler:     r.HandlePointToCity,
		})
	}
	return defs
}

// RegisterTools registers all tools with the MCP server.
func (r *Registry) RegisterTools(mcpServer *server.MCPServer) {
	for _, def := range r.GetToolDefinitions() {
		r.logger.Info("registering tool", "name", def.Name)
		mcpServer.AddTool(def.Tool, server.ToolHandlerFunc(instrument(def.Name, def.Handler)))
	}
}

// instrument counts calls of a tool by outcome.
func instrument(name string, h ToolHandler) ToolHandler {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := h(ctx, req)
		status := "ok"
		if err != nil || (res != nil && res.IsError) {
			status = "error"
		}
		metrics.ToolCalls.WithLabelValues(name, status).Inc()
		return res, err
	}
}
