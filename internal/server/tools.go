package server

import (
	"github.com/ironsheep/pixel-filter-mcp/internal/filter"
	"github.com/ironsheep/pixel-filter-mcp/internal/imaging"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the image path argument shared by every tool.
var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// filterSchema builds the input schema of a filter tool: the properties
// shared by every filter plus the tool's own.
func filterSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	all := map[string]interface{}{
		"path": pathProperty,
		"output_path": map[string]interface{}{
			"type":        "string",
			"description": "Optional file to write the result to (.png, .jpg, .jpeg or .bmp). A path ending in / names a directory and gets a generated PNG file name. Relative paths are resolved against the configured output directory",
		},
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional scale factor for the returned preview (e.g., 0.5). The saved file is always full size. At most 4. Default 1.0",
			"default":     1.0,
		},
		"region": map[string]interface{}{
			"type":        "string",
			"description": "Optional named region to filter instead of the whole image",
			"enum":        imaging.Regions,
		},
		"crop": map[string]interface{}{
			"type":        "object",
			"description": "Optional rectangle to filter instead of the whole image (x2, y2 exclusive). Cannot be combined with region",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		},
	}
	for k, v := range props {
		all[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": all,
		"required":   append([]string{"path"}, required...),
	}
}

func opNames() []string {
	names := make([]string, len(filter.Ops))
	for i, op := range filter.Ops {
		names[i] = string(op)
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and decoded RGBA buffer size. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"thumbnail_size": map[string]interface{}{
						"type":        "integer",
						"description": "Optional maximum width and height of a PNG preview to include. Default 0 (no preview)",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Pixel Adjustments
		{
			Name:        "image_brightness",
			Description: "Add brightness*255 to the red, green and blue channels. Alpha is unchanged. Returns the result as base64-encoded PNG.",
			InputSchema: filterSchema(map[string]interface{}{
				"brightness": map[string]interface{}{
					"type":        "number",
					"description": "Brightness offset, typically -1.0 to 1.0 (0.1 adds 25 to each channel)",
				},
			}, "brightness"),
		},
		{
			Name:        "image_contrast",
			Description: "Scale red, green and blue around mid-gray 128. Positive values increase contrast, negative values flatten it. Alpha is unchanged.",
			InputSchema: filterSchema(map[string]interface{}{
				"contrast": map[string]interface{}{
					"type":        "number",
					"description": "Contrast, typically -255 to 255. 259 is rejected",
				},
			}, "contrast"),
		},
		{
			Name:        "image_grayscale",
			Description: "Convert to grayscale using luma 0.299R + 0.587G + 0.114B. Alpha is unchanged.",
			InputSchema: filterSchema(nil),
		},
		{
			Name:        "image_saturation",
			Description: "Scale HSV saturation by 1+amount. -1 removes all color, 1 doubles saturation. Alpha is unchanged.",
			InputSchema: filterSchema(map[string]interface{}{
				"amount": map[string]interface{}{
					"type":        "number",
					"description": "Saturation change, typically -1.0 to 1.0",
				},
			}, "amount"),
		},
		{
			Name:        "image_hue",
			Description: "Rotate HSV hue by the given number of degrees. Alpha is unchanged.",
			InputSchema: filterSchema(map[string]interface{}{
				"degrees": map[string]interface{}{
					"type":        "number",
					"description": "Hue rotation in degrees; any value, taken modulo 360",
				},
			}, "degrees"),
		},

		// Convolution
		{
			Name:        "image_blur",
			Description: "Separable Gaussian blur (sigma = radius/3) with clamp-to-edge sampling. All four channels are blurred. A radius below 1 leaves the image unchanged.",
			InputSchema: filterSchema(map[string]interface{}{
				"radius": map[string]interface{}{
					"type":        "number",
					"description": "Blur radius in pixels",
				},
			}, "radius"),
		},

		// Masking
		{
			Name:        "image_remove_background",
			Description: "Make pixels transparent where normalized luminance (0.299R + 0.587G + 0.114B)/255 is below the threshold. Color channels are unchanged.",
			InputSchema: filterSchema(map[string]interface{}{
				"threshold": map[string]interface{}{
					"type":        "number",
					"description": "Luminance threshold from 0.0 to 1.0",
				},
			}, "threshold"),
		},

		// Inspection
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a pixel in hex, RGBA and HSL, with its luminance. Optionally apply one filter first to inspect its effect.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
					"filter": map[string]interface{}{
						"type":        "string",
						"description": "Optional filter to apply before sampling",
						"enum":        opNames(),
					},
					"value": map[string]interface{}{
						"type":        "number",
						"description": "Parameter of the filter (ignored for grayscale). Default 0",
						"default":     0.0,
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
