package generator

// VocabularyPackSchema defines the JSON schema for vocabulary pack generation.
var VocabularyPackSchema = &Schema{
	Name:        "vocabulary-pack",
	Description: "A set of vocabulary flashcards for a language learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term": map[string]any{
							"type":        "string",
							"description": "The vocabulary word or phrase",
						},
						"definition": map[string]any{
							"type":        "string",
							"description": "Short learner-friendly definition (one sentence)",
						},
						"transcription": map[string]any{
							"type":        "string",
							"description": "IPA transcription including slashes, e.g. /həˈloʊ/",
						},
						"example": map[string]any{
							"type":        "string",
							"description": "Natural example sentence using the term",
						},
					},
					"required":             []any{"term", "definition", "transcription", "example"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"cards"},
		"additionalProperties": false,
	},
}

// ReadingPracticeSchema defines the JSON schema for TOEIC-style reading
// practice. The passage is optional: incomplete-sentence questions stand
// alone, comprehension questions refer to a generated text.
var ReadingPracticeSchema = &Schema{
	Name:        "reading-practice",
	Description: "TOEIC-style reading practice questions, optionally anchored to a short text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"passage": map[string]any{
				"type":        "string",
				"description": "Business email, memo, or advertisement the questions refer to; empty for standalone questions",
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question, or a sentence with _____ marking the blank",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly four answer options",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the answer is correct",
						},
					},
					"required":             []any{"prompt", "options", "correct_index", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// ReadingQuizSchema defines the JSON schema for reading quiz generation.
var ReadingQuizSchema = &Schema{
	Name:        "reading-quiz",
	Description: "A short reading passage with multiple-choice comprehension questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"passage": map[string]any{
				"type":        "string",
				"description": "Reading passage of 120-180 words at the requested level",
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The comprehension question",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly four answer options",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One-sentence explanation of the correct answer",
						},
					},
					"required":             []any{"prompt", "options", "correct_index", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"passage", "questions"},
		"additionalProperties": false,
	},
}
