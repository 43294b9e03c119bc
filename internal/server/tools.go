package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// metricProperty is the shared schema fragment for the metric option.
func metricProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"sad", "ncc"},
		"description": "Edge dissimilarity metric: 'sad' (summed absolute RGB difference, default) or 'ncc' (1 - normalized cross-correlation of grayscale rows)",
		"default":     "sad",
	}
}

// smoothSigmaProperty is the shared schema fragment for the smoothing option.
func smoothSigmaProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": "Gaussian pre-smoothing radius applied to each strip before edge sampling. 0 (default) disables smoothing; try 1.0-2.0 for heavily compressed scans",
		"default":     0,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Reconstruction
		{
			Name:        "strips_reconstruct",
			Description: "Reconstruct a document that was cut into vertical strips. Takes the strip images and returns the permutation of input indices that restores left-to-right reading order. On undecodable or inconsistent input the original order is returned with fallback=true.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"strips": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Base64-encoded strip images (PNG, JPEG, or GIF), in the order the strips were received",
					},
					"metric": metricProperty(),
					"disable_two_opt": map[string]interface{}{
						"type":        "boolean",
						"description": "Skip the 2-opt refinement pass and return the raw greedy ordering",
						"default":     false,
					},
					"smooth_sigma": smoothSigmaProperty(),
				},
				"required": []string{"strips"},
			},
		},
		{
			Name:        "strips_reconstruct_files",
			Description: "Reconstruct a shredded document from strip image files on disk. Same behavior as strips_reconstruct; files are cached across calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths to the strip image files, in the order the strips were received",
					},
					"metric": metricProperty(),
					"disable_two_opt": map[string]interface{}{
						"type":        "boolean",
						"description": "Skip the 2-opt refinement pass and return the raw greedy ordering",
						"default":     false,
					},
					"smooth_sigma": smoothSigmaProperty(),
				},
				"required": []string{"paths"},
			},
		},

		// Debugging
		{
			Name:        "strips_score_pair",
			Description: "Score how well two strips fit next to each other: the dissimilarity between the right edge of strip A and the left edge of strip B. Lower is better; use this to inspect why a reconstruction chose or rejected a particular adjacency.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"strip_a": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded image of the candidate left strip",
					},
					"strip_b": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded image of the candidate right strip",
					},
					"metric":       metricProperty(),
					"smooth_sigma": smoothSigmaProperty(),
				},
				"required": []string{"strip_a", "strip_b"},
			},
		},
		{
			Name:        "strips_edge_profile",
			Description: "Summarize one edge of a strip: height, grayscale mean and spread, flatness, and average color (hex and CIE-Lab). Flat edges carry no correlation signal and make NCC matching unreliable.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"strip": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded strip image (alternative to path)",
					},
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a strip image file (alternative to strip)",
					},
					"side": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"left", "right"},
						"description": "Which edge to profile. Default left",
						"default":     "left",
					},
					"smooth_sigma": smoothSigmaProperty(),
				},
			},
		},
	}
}
