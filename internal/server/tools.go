package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Schema fragments shared by several tools.
var (
	pathProperty = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
	alphaThresholdProperty = map[string]interface{}{
		"type":        "integer",
		"description": "A pixel is opaque when its alpha exceeds this value (0-255). Defaults to the server setting, normally 0",
		"minimum":     0,
		"maximum":     255,
	}
	pointsProperty = map[string]interface{}{
		"type":        "array",
		"description": "Points as {x, y} objects",
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x": map[string]interface{}{"type": "number"},
				"y": map[string]interface{}{"type": "number"},
			},
			"required": []string{"x", "y"},
		},
	}
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it has an alpha channel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_opaque_points",
			Description: "List the pixel coordinates whose alpha exceeds the threshold. By default only outline pixels are returned, which is enough to determine the hull.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":            pathProperty,
					"alpha_threshold": alphaThresholdProperty,
					"boundary_only": map[string]interface{}{
						"type":        "boolean",
						"description": "Return only opaque pixels next to a transparent pixel or the image edge",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of points to return. Defaults to the server setting, normally 1000",
						"minimum":     1,
					},
				},
				"required": []string{"path"},
			},
		},

		// Optical Center
		{
			Name:        "image_convex_hull",
			Description: "Compute the convex hull of the opaque pixels. Vertices are counter-clockwise in a y-up frame (clockwise on screen), starting at the smallest (x, y).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":            pathProperty,
					"alpha_threshold": alphaThresholdProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_enclosing_circle",
			Description: "Compute the smallest circle enclosing all opaque pixels. Its center is the optical center of the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":            pathProperty,
					"alpha_threshold": alphaThresholdProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_optical_center",
			Description: "Full optical-center analysis: hull, hull area and centroid, enclosing circle, canvas center and the offset between the optical center and the canvas center.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":            pathProperty,
					"alpha_threshold": alphaThresholdProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_render_overlay",
			Description: "Draw the convex hull and the enclosing circle on the image and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":            pathProperty,
					"alpha_threshold": alphaThresholdProperty,
					"path_color": map[string]interface{}{
						"type":        "string",
						"description": "Hull color as hex (#RRGGBB or #RRGGBBAA)",
					},
					"circle_color": map[string]interface{}{
						"type":        "string",
						"description": "Circle color as hex (#RRGGBB or #RRGGBBAA)",
					},
					"show_label": map[string]interface{}{
						"type":        "boolean",
						"description": "Label the circle center with its coordinates",
						"default":     true,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_recenter_crop",
			Description: "Crop a square around the enclosing circle so the optical center sits in the middle of the output. Areas outside the source are transparent.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":            pathProperty,
					"alpha_threshold": alphaThresholdProperty,
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Extra pixels around the circle on every side. Default 0",
						"default":     0,
						"minimum":     0,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},

		// Raw Geometry
		{
			Name:        "geometry_convex_hull",
			Description: "Compute the convex hull of a list of points.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": pointsProperty,
				},
				"required": []string{"points"},
			},
		},
		{
			Name:        "geometry_enclosing_circle",
			Description: "Compute the smallest circle enclosing a list of points. Returns found=false for an empty list.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": pointsProperty,
				},
				"required": []string{"points"},
			},
		},
	}
}
