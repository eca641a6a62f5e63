package quizgen

import "github.com/abiral/quizforge/internal/llm"

// QuizSchema defines the JSON schema for quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "topic-quiz",
	Description: "A multiple-choice quiz with questions, lettered options, and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type":        "string",
				"description": "The topic the quiz covers",
			},
			"difficulty_level": map[string]any{
				"type": "string",
				"enum": []any{"easy", "medium", "hard"},
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"A": map[string]any{"type": "string"},
								"B": map[string]any{"type": "string"},
								"C": map[string]any{"type": "string"},
								"D": map[string]any{"type": "string"},
							},
							"required":             []any{"A", "B", "C", "D"},
							"additionalProperties": false,
						},
						"correct_answer": map[string]any{
							"type": "string",
							"enum": []any{"A", "B", "C", "D"},
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Brief explanation of why the correct answer is correct",
						},
					},
					"required":             []any{"question", "options", "correct_answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"topic", "difficulty_level", "questions"},
		"additionalProperties": false,
	},
}
