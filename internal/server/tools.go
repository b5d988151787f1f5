package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

func intProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": desc}
}

func boolProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": desc}
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	textOnly := func(desc string) map[string]interface{} {
		return objectSchema(map[string]interface{}{"text": stringProp(desc)}, "text")
	}

	return []Tool{
		// Units
		{
			Name:        "unit_convert",
			Description: "Convert a value between units of length, weight, volume or temperature. The result has exactly four decimal places. An empty unit or value gives an empty result; a non-numeric value gives \"Invalid input\".",
			InputSchema: objectSchema(map[string]interface{}{
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Unit category",
					"enum":        []string{"length", "weight", "volume", "temperature"},
				},
				"from":   stringProp("Source unit, e.g. \"miles\" or \"Fahrenheit\""),
				"to":     stringProp("Target unit, e.g. \"kilometers\" or \"Celsius\""),
				"value":  map[string]interface{}{"type": []string{"string", "number"}, "description": "Value to convert"},
				"strict": boolProp("Reject unknown units instead of passing the value through. Defaults to the server setting."),
			}, "category"),
		},
		{
			Name:        "unit_list",
			Description: "List the unit names of each category, or of one category, with its base unit.",
			InputSchema: objectSchema(map[string]interface{}{
				"category": stringProp("Optional category to list"),
			}),
		},

		// Colors
		{
			Name:        "color_convert",
			Description: "Convert a #RRGGBB hex color, or r/g/b channels, to its hex, rgb() and hsl() forms.",
			InputSchema: objectSchema(map[string]interface{}{
				"hex": stringProp("Hex color, with or without the leading #"),
				"r":   intProp("Red channel 0-255 (used when hex is empty)"),
				"g":   intProp("Green channel 0-255"),
				"b":   intProp("Blue channel 0-255"),
			}),
		},
		{
			Name:        "color_sample_image",
			Description: "Pick the color of one pixel in an image file and return it as hex, rgb and hsl.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProp("Absolute path to the image file"),
				"x":    intProp("X coordinate (0 = left edge)"),
				"y":    intProp("Y coordinate (0 = top edge)"),
			}, "path", "x", "y"),
		},
		{
			Name:        "color_palette",
			Description: "Extract the most common colors of an image or a region of it.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProp("Absolute path to the image file"),
				"count": map[string]interface{}{
					"type":        "integer",
					"description": "Number of colors to return (1-32)",
					"default":     5,
				},
				"region": objectSchema(map[string]interface{}{
					"x1": intProp("Left edge"),
					"y1": intProp("Top edge"),
					"x2": intProp("Right edge (exclusive)"),
					"y2": intProp("Bottom edge (exclusive)"),
				}),
			}, "path"),
		},
		{
			Name:        "color_loupe",
			Description: "Magnify the pixels around a point of an image, like an eyedropper loupe. Returns a PNG (base64) and the color at the point.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":       stringProp("Absolute path to the image file"),
				"x":          intProp("X coordinate of the center pixel"),
				"y":          intProp("Y coordinate of the center pixel"),
				"radius":     intProp("Pixels shown on each side of the center (1-32, default 5)"),
				"zoom":       intProp("Magnification per pixel (2-32, default 10)"),
				"grid_color": stringProp("Hex color of the pixel grid; omit for no grid"),
			}, "path", "x", "y"),
		},
		{
			Name:        "image_cache_clear",
			Description: "Drop decoded images from the eyedropper cache. Pass a path to evict one image; omit it to clear everything.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProp("Image path exactly as it was sampled"),
			}),
		},

		// Encoders
		{
			Name:        "base64_encode",
			Description: "Encode text (as UTF-8) to standard Base64.",
			InputSchema: textOnly("Text to encode"),
		},
		{
			Name:        "base64_decode",
			Description: "Decode standard Base64 to UTF-8 text. Whitespace and missing padding are tolerated.",
			InputSchema: textOnly("Base64 to decode"),
		},
		{
			Name:        "url_encode",
			Description: "Percent-encode text for use as a URL component.",
			InputSchema: textOnly("Text to encode"),
		},
		{
			Name:        "url_decode",
			Description: "Decode a percent-encoded URL component.",
			InputSchema: textOnly("Text to decode"),
		},

		// Generators
		{
			Name:        "password_generate",
			Description: "Generate a random password from the selected character classes.",
			InputSchema: objectSchema(map[string]interface{}{
				"length":    intProp("Password length (4-128, default from server config)"),
				"uppercase": boolProp("Include A-Z (default true)"),
				"lowercase": boolProp("Include a-z (default true)"),
				"numbers":   boolProp("Include 0-9 (default true)"),
				"symbols":   boolProp("Include symbols (default true)"),
			}),
		},
		{
			Name:        "dice_roll",
			Description: "Roll a die and return the result with the recent roll history.",
			InputSchema: objectSchema(map[string]interface{}{
				"sides": map[string]interface{}{
					"type":        "integer",
					"description": "Number of sides, common values 4, 6, 8, 10, 12, 20, 100",
					"default":     6,
				},
			}),
		},
		{
			Name:        "dice_history",
			Description: "Return the recent dice rolls, newest first, optionally clearing them.",
			InputSchema: objectSchema(map[string]interface{}{
				"clear": boolProp("Clear the history"),
			}),
		},
		{
			Name:        "lorem_words",
			Description: "Generate lorem ipsum filler text with the given number of words.",
			InputSchema: objectSchema(map[string]interface{}{
				"count": intProp("Number of words"),
			}, "count"),
		},

		// Text
		{
			Name:        "regex_test",
			Description: "Run a regular expression against text and list matches with their groups. Flags follow JavaScript: g, i, m, s, u, y.",
			InputSchema: objectSchema(map[string]interface{}{
				"pattern": stringProp("Regular expression"),
				"text":    stringProp("Text to search"),
				"flags":   stringProp("Flag letters, e.g. \"gi\""),
			}, "pattern", "text"),
		},
		{
			Name:        "text_diff",
			Description: "Compare two texts line by line. Returns added/removed/equal parts and a unified diff.",
			InputSchema: objectSchema(map[string]interface{}{
				"left":  stringProp("Original text"),
				"right": stringProp("Changed text"),
				"context": map[string]interface{}{
					"type":        "integer",
					"description": "Context lines in the unified diff",
					"default":     3,
				},
			}, "left", "right"),
		},
		{
			Name:        "markdown_render",
			Description: "Render GitHub-flavored Markdown to sanitized HTML.",
			InputSchema: objectSchema(map[string]interface{}{
				"markdown": stringProp("Markdown source"),
			}, "markdown"),
		},

		// Time
		{
			Name:        "age_calculate",
			Description: "Calculate an age in years, months and days from a birth date.",
			InputSchema: objectSchema(map[string]interface{}{
				"birth_date": stringProp("Birth date, YYYY-MM-DD"),
				"today":      stringProp("Reference date, YYYY-MM-DD (default: today)"),
			}, "birth_date"),
		},
		{
			Name:        "pomodoro_plan",
			Description: "Lay out the next pomodoro work and break phases. Settings default to the server configuration.",
			InputSchema: objectSchema(map[string]interface{}{
				"phases": map[string]interface{}{
					"type":        "integer",
					"description": "Number of phases to list (1-100)",
					"default":     8,
				},
				"work_minutes":       intProp("Work phase length"),
				"break_minutes":      intProp("Short break length"),
				"long_break_minutes": intProp("Long break length"),
				"long_break_every":   intProp("Pomodoros between long breaks"),
			}),
		},

		// Images
		{
			Name:        "qr_generate",
			Description: "Generate a QR code PNG (base64) for text or a URL.",
			InputSchema: objectSchema(map[string]interface{}{
				"text": stringProp("Content to encode"),
				"size": map[string]interface{}{
					"type":        "integer",
					"description": "Image width and height in pixels (64-1024)",
					"default":     256,
				},
				"fg_color": stringProp("Foreground hex color (default #000000)"),
				"bg_color": stringProp("Background hex color (default #FFFFFF)"),
			}, "text"),
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
