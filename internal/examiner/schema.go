package examiner

import "github.com/abhisek/mindflow/internal/llm"

// EvaluationSchema defines the JSON schema for answer evaluation responses.
var EvaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "Verdict on a student's answer to an exam question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isCorrect": map[string]any{
				"type":        "boolean",
				"description": "Whether the student's answer is correct",
			},
			"finalAnswer": map[string]any{
				"type":        "string",
				"description": "The textbook correct answer",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Step-by-step logic if wrong",
			},
		},
		"required":             []any{"isCorrect", "finalAnswer", "explanation"},
		"additionalProperties": false,
	},
}
