package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/geokit/pkg/geo"
)

// ToolError is the JSON body of a failed tool call.
type ToolError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Guidance string `json:"guidance,omitempty"`
}

// Guidance attached to tool errors by kind.
const (
	GuidanceCoordinateFormat = `Use decimal degrees (49.2827) or DMS/DDM text such as 34°3'8"N or 34°3.133'N.`
	GuidanceCoordinateRange  = "Latitude must be within [-90, 90] and longitude within [-180, 180]."
	GuidanceLookup           = "Try a more specific place name including city and country, or pass coordinates instead."
	GuidanceSchema           = "The configured cities file must provide polygon geometries and a city name property."
	GuidanceGeneral          = "Please try again later or modify your request parameters."
)

// ErrorResponse is used for consistent error reporting
func ErrorResponse(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}

// NewToolError converts err into a ToolError, classifying geo errors by kind.
func NewToolError(err error) ToolError {
	var gerr *geo.Error
	if !errors.As(err, &gerr) {
		return ToolError{Code: "INTERNAL", Message: err.Error(), Guidance: GuidanceGeneral}
	}

	te := ToolError{Code: gerr.Kind.String(), Message: gerr.Msg}
	switch gerr.Kind {
	case geo.KindFormat, geo.KindType:
		te.Guidance = GuidanceCoordinateFormat
	case geo.KindRange:
		te.Guidance = GuidanceCoordinateRange
	case geo.KindLookup:
		te.Guidance = GuidanceLookup
	case geo.KindSchema:
		te.Guidance = GuidanceSchema
	}
	return te
}

// ErrorResult returns a tool error result describing err.
func ErrorResult(err error) *mcp.CallToolResult {
	body, mErr := json.Marshal(NewToolError(err))
	if mErr != nil {
		return ErrorResponse(fmt.Sprintf("Error: %s", err))
	}
	return ErrorResponse(string(body))
}

// jsonResult marshals output into a text result.
func jsonResult(output any) (*mcp.CallToolResult, error) {
	resultBytes, err := json.Marshal(output)
	if err != nil {
		return ErrorResponse("Failed to generate result"), nil
	}
	return mcp.NewToolResultText(string(resultBytes)), nil
}
