package questionbank

import (
	"github.com/abhisek/simulado/internal/exam"
	"github.com/abhisek/simulado/internal/llm"
)

// SchemaName identifies the structured-output schema sent to the LLM.
const SchemaName = "cebraspe-quiz"

// BankSchema returns the JSON schema for a generation request. The subject
// enum is narrowed to the requested subjects.
func BankSchema(cfg exam.QuizConfig) *llm.Schema {
	subjects := make([]any, 0, len(cfg.Subjects))
	for _, s := range cfg.Subjects {
		subjects = append(subjects, s.String())
	}
	difficulties := make([]any, 0, 3)
	for _, d := range exam.AllDifficulties() {
		difficulties = append(difficulties, string(d))
	}

	return &llm.Schema{
		Name:        SchemaName,
		Description: "Simulado de múltipla escolha no estilo Cebraspe",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": cfg.QuestionCount,
					"maxItems": cfg.QuestionCount,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id": map[string]any{"type": "integer"},
							"subject": map[string]any{
								"type": "string",
								"enum": subjects,
							},
							"difficulty": map[string]any{
								"type": "string",
								"enum": difficulties,
							},
							"statement": map[string]any{"type": "string"},
							"options": map[string]any{
								"type":        "array",
								"items":       map[string]any{"type": "string"},
								"minItems":    exam.OptionCount,
								"maxItems":    exam.OptionCount,
								"description": "Exactly 5 options (A, B, C, D, E).",
							},
							"correctIndex": map[string]any{
								"type":        "integer",
								"minimum":     0,
								"maximum":     exam.OptionCount - 1,
								"description": "Index of the correct option (0-4)",
							},
							"explanation": map[string]any{
								"type":        "string",
								"description": "Detailed explanation quoting laws/articles.",
							},
						},
						"required":             []any{"id", "subject", "difficulty", "statement", "options", "correctIndex", "explanation"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}
}
