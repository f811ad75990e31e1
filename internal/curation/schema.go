package curation

import "github.com/abhisek/learnflow/internal/llm"

// SelectionSchema defines the JSON schema for video curation.
var SelectionSchema = &llm.Schema{
	Name:        "video-curation",
	Description: "Ordered selection of the best videos for a learning goal, with a learning plan",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"selectedVideos": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"videoId": map[string]any{
							"type":        "string",
							"description": "The videoId exactly as given in the candidate list",
						},
						"title": map[string]any{"type": "string"},
						"reason": map[string]any{
							"type":        "string",
							"description": "Why this video was selected (one sentence)",
						},
						"order": map[string]any{
							"type":        "integer",
							"description": "Position in the learning sequence, starting at 1",
						},
						"concepts": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"maxItems": 5,
						},
					},
					"required":             []any{"videoId", "title", "reason", "order", "concepts"},
					"additionalProperties": false,
				},
			},
			"learningPlan": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"sequence":        map[string]any{"type": "string"},
					"focusAreas":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"prerequisites":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"expectedOutcome": map[string]any{"type": "string"},
				},
				"required":             []any{"sequence", "focusAreas", "prerequisites", "expectedOutcome"},
				"additionalProperties": false,
			},
		},
		"required":             []any{"selectedVideos", "learningPlan"},
		"additionalProperties": false,
	},
}
