// Package prompts provides prompt templates for use with the MCP server.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterPrompts registers all geokit prompts with the MCP server
func RegisterPrompts(s *server.MCPServer) {
	s.AddPrompt(mcp.NewPrompt("coordinate_formats",
		mcp.WithPromptDescription("Coordinate formats accepted by the geokit tools"),
	), CoordinateFormatsPromptHandler)

	s.AddPrompt(mcp.NewPrompt("antipode_examples",
		mcp.WithPromptDescription("Examples of get_antipode usage and how to read its descriptions"),
	), AntipodeExamplesHandler)
}

// CoordinateFormatsPromptHandler returns the prompt describing coordinate input
func CoordinateFormatsPromptHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	systemPrompt := `The geokit tools accept latitude and longitude in three forms:

1. Decimal degrees, signed: 49.2827, -123.1207
2. Degrees, minutes, seconds (DMS) with a hemisphere letter: 34°3'8"N, 118°14'37"W
3. Degrees and decimal minutes (DDM) with a hemisphere letter: 49°16.962'N

Rules:
- S and W hemispheres are negative; do not also add a minus sign to DMS or DDM text
- Latitude must be within [-90, 90], longitude within [-180, 180]
- Spaces between components are allowed: 34° 3' 8" N
- Use standardize_coordinates to convert text to decimal before comparing values

ERROR CODES:
- INVALID_FORMAT: the text matched neither DMS nor DDM; check the degree sign and hemisphere letter
- OUT_OF_RANGE: the parsed value is outside the valid bounds, or the distance unit is not km, m or miles
- INVALID_TYPE: a value was missing or was not a number or text`

	return mcp.NewGetPromptResult(
		"Coordinate Formats",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(systemPrompt),
			),
		},
	), nil
}

// AntipodeExamplesHandler returns examples for get_antipode
func AntipodeExamplesHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	examplesPrompt := `EXAMPLES OF EFFECTIVE GET_ANTIPODE USAGE:

User: "What is on the opposite side of the Earth from Madrid?"
AI: *uses get_antipode with location: "Madrid, Spain"*

User: "Where would I come out if I dug straight down from 49.2827, -123.1207?"
AI: *uses get_antipode with latitude: 49.2827, longitude: -123.1207*

User: "Just give me the antipode coordinates of 0, 179."
AI: *uses get_antipode with latitude: 0, longitude: 179, resolve_names: false*

READING THE DESCRIPTION:
- A place name means the reverse geocoder found something at the antipode
- An ocean name means nothing was found there and the coarse ocean classifier was used
- "Unknown (geocoding service unavailable)" means the lookup failed; the coordinates are still correct
- null means resolve_names was false

If a place name returns NOT_FOUND, add the city and country, or pass coordinates instead.`

	return mcp.NewGetPromptResult(
		"Antipode Examples",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(examplesPrompt),
			),
		},
	), nil
}
