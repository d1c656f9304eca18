package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

const validQuizJSON = `{"questions":[{"question":"SI unit of force?","options":["Newton","Joule","Watt","Pascal"],"answer":0}]}`

func testQuizSchema() *Schema {
	return &Schema{
		Name:        "test-quiz",
		Description: "Multiple-choice questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{"type": "string"},
							"options": map[string]any{
								"type":     "array",
								"items":    map[string]any{"type": "string"},
								"minItems": 4,
								"maxItems": 4,
							},
							"answer": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
						},
						"required":             []string{"question", "options", "answer"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []string{"questions"},
			"additionalProperties": false,
		},
	}
}

func assertInvalid(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_ValidJSON(t *testing.T) {
	if err := validateResponse(testQuizSchema(), json.RawMessage(validQuizJSON)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"questions":[{"question":"q","options":["a","b","c","d"]}]}`)
	assertInvalid(t, validateResponse(testQuizSchema(), raw))
}

func TestValidateResponse_WrongOptionCount(t *testing.T) {
	raw := json.RawMessage(`{"questions":[{"question":"q","options":["a","b","c"],"answer":0}]}`)
	assertInvalid(t, validateResponse(testQuizSchema(), raw))
}

func TestValidateResponse_AnswerOutOfRange(t *testing.T) {
	raw := json.RawMessage(`{"questions":[{"question":"q","options":["a","b","c","d"],"answer":4}]}`)
	assertInvalid(t, validateResponse(testQuizSchema(), raw))
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"questions":[{"question":"q","options":["a","b","c","d"],"answer":"A"}]}`)
	assertInvalid(t, validateResponse(testQuizSchema(), raw))
}

func TestValidateResponse_EmptyQuestions(t *testing.T) {
	assertInvalid(t, validateResponse(testQuizSchema(), json.RawMessage(`{"questions":[]}`)))
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	assertInvalid(t, validateResponse(testQuizSchema(), json.RawMessage(`{not json}`)))
}

func TestValidateResponse_EmptyResponse(t *testing.T) {
	if err := validateResponse(testQuizSchema(), json.RawMessage(``)); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`plain text tips`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_Enum(t *testing.T) {
	schema := &Schema{
		Name: "test-grade",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"grade": map[string]any{"type": "string", "enum": []any{"9", "10", "11", "12"}},
			},
			"required": []any{"grade"},
		},
	}

	if err := validateResponse(schema, json.RawMessage(`{"grade":"10"}`)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	assertInvalid(t, validateResponse(schema, json.RawMessage(`{"grade":"8"}`)))
}

func TestCompileSchema_Cached(t *testing.T) {
	first, err := compileSchema(testQuizSchema())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, err := compileSchema(testQuizSchema())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if first != second {
		t.Error("expected the cached compiled schema to be reused")
	}
}
