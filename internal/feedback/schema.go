package feedback

import "github.com/abiral/quizforge/internal/llm"

// FeedbackSchema defines the JSON schema for incorrect-answer explanations.
var FeedbackSchema = &llm.Schema{
	Name:        "answer-feedback",
	Description: "Short explanations for each incorrectly answered question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question_id": map[string]any{
							"type":        "integer",
							"description": "The id of the question this explanation covers",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "2-3 short sentences on why the selected answer is wrong and the correct one is right",
						},
					},
					"required":             []any{"question_id", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"items"},
		"additionalProperties": false,
	},
}
