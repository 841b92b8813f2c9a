package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// frameProperties are accepted by every tool to locate a capture.
func frameProperties() map[string]interface{} {
	return map[string]interface{}{
		"dir": map[string]interface{}{
			"type":        "string",
			"description": "Capture directory holding DepthData.bin and IR.jpg",
		},
		"depth_path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the raw depth file (little-endian uint16 millimeters, no header). Overrides dir.",
		},
		"image_path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the companion intensity image; its size defines the frame size. Overrides dir.",
		},
	}
}

// rectProperties describe a selection given by two corners in any order.
func rectProperties() map[string]interface{} {
	return map[string]interface{}{
		"x0": map[string]interface{}{"type": "integer", "description": "First corner X (0-based)"},
		"y0": map[string]interface{}{"type": "integer", "description": "First corner Y (0-based)"},
		"x1": map[string]interface{}{"type": "integer", "description": "Opposite corner X (exclusive once normalized)"},
		"y1": map[string]interface{}{"type": "integer", "description": "Opposite corner Y (exclusive once normalized)"},
	}
}

func viewProperties() map[string]interface{} {
	return map[string]interface{}{
		"view": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"depth", "intensity", "overlay"},
			"description": "Which rendering to use (default depth)",
			"default":     "depth",
		},
		"opacity": map[string]interface{}{
			"type":        "number",
			"description": "Depth color weight for the overlay view (0-1, default 0.5)",
			"default":     0.5,
		},
	}
}

func scaleProperty() map[string]interface{} {
	return map[string]interface{}{
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
			"default":     1.0,
		},
	}
}

// schema merges property groups into an object schema.
func schema(required []string, groups ...map[string]interface{}) map[string]interface{} {
	props := make(map[string]interface{})
	for _, g := range groups {
		for k, v := range g {
			props[k] = v
		}
	}
	s := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	rect := []string{"x0", "y0", "x1", "y1"}

	return []Tool{
		// Loading
		{
			Name:        "depth_load",
			Description: "Load a depth capture (raw depth file plus companion intensity image) and return its dimensions and depth range.",
			InputSchema: schema(nil, frameProperties()),
		},

		// Rendering
		{
			Name:        "depth_colorize",
			Description: "Render the capture as a base64-encoded PNG. The depth view maps every 500mm to one full hue rotation starting at 500mm (red); pixels without a reading are black.",
			InputSchema: schema(nil, frameProperties(), viewProperties(), scaleProperty()),
		},
		{
			Name:        "depth_selection_preview",
			Description: "Draw a selection rectangle on the capture so the region can be checked before computing statistics.",
			InputSchema: schema(rect, frameProperties(), rectProperties(), viewProperties(), scaleProperty(), map[string]interface{}{
				"color": map[string]interface{}{
					"type":        "string",
					"description": "Outline color as hex (default #FF0000)",
					"default":     "#FF0000",
				},
			}),
		},
		{
			Name:        "depth_grid_overlay",
			Description: "Return a rendering of the capture with a coordinate grid for picking region corners.",
			InputSchema: schema(nil, frameProperties(), viewProperties(), map[string]interface{}{
				"grid_spacing": map[string]interface{}{
					"type":        "integer",
					"description": "Pixels between grid lines (default 50)",
					"default":     50,
				},
				"show_coordinates": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether to label grid intersections with coordinates",
					"default":     true,
				},
				"grid_color": map[string]interface{}{
					"type":        "string",
					"description": "Grid line color as hex (default #FFFFFF80 - semi-transparent white)",
					"default":     "#FFFFFF80",
				},
			}),
		},
		{
			Name:        "depth_crop",
			Description: "Crop a rectangular region from a rendering of the capture and return it as base64-encoded PNG.",
			InputSchema: schema(rect, frameProperties(), rectProperties(), viewProperties(), scaleProperty()),
		},

		// Statistics
		{
			Name:        "depth_region_stats",
			Description: "Compute depth statistics inside a rectangle: good/bad sample counts, min, max, mean and the mean of the nearest readings. Corners may be given in any order and are clamped to the frame.",
			InputSchema: schema(rect, frameProperties(), rectProperties()),
		},
		{
			Name:        "depth_region_histogram",
			Description: "Plot the distribution of valid depth readings inside a rectangle as a base64-encoded PNG histogram.",
			InputSchema: schema(rect, frameProperties(), rectProperties(), map[string]interface{}{
				"bins": map[string]interface{}{
					"type":        "integer",
					"description": "Number of histogram bins (default 20)",
					"default":     20,
				},
			}),
		},

		// Sampling
		{
			Name:        "depth_sample",
			Description: "Get the raw depth and rendered color at a pixel.",
			InputSchema: schema([]string{"x", "y"}, frameProperties(), map[string]interface{}{
				"x": map[string]interface{}{"type": "integer", "description": "X coordinate (0-based, from left)"},
				"y": map[string]interface{}{"type": "integer", "description": "Y coordinate (0-based, from top)"},
			}),
		},
		{
			Name:        "depth_sample_multi",
			Description: "Get the raw depth and rendered color at several pixels in one call.",
			InputSchema: schema([]string{"points"}, frameProperties(), map[string]interface{}{
				"points": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x":     map[string]interface{}{"type": "integer"},
							"y":     map[string]interface{}{"type": "integer"},
							"label": map[string]interface{}{"type": "string", "description": "Optional label for this point"},
						},
						"required": []string{"x", "y"},
					},
					"description": "Array of points to sample",
				},
			}),
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
