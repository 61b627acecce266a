package llm

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

func questionSchema(options int) *Schema {
	return &Schema{
		Name: "cebraspe-question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"statement": map[string]any{"type": "string", "minLength": 1},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": options,
					"maxItems": options,
				},
				"correctIndex": map[string]any{"type": "integer", "minimum": 0, "maximum": options - 1},
				"subject":      map[string]any{"type": "string", "enum": []any{"contabilidade", "auditoria"}},
			},
			"required": []any{"statement", "options", "correctIndex"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"statement":"S","options":["a","b","c","d","e"],"correctIndex":4,"subject":"auditoria"}`, false},
		{"optional field omitted", `{"statement":"S","options":["a","b","c","d","e"],"correctIndex":0}`, false},
		{"missing required", `{"statement":"S","options":["a","b","c","d","e"]}`, true},
		{"wrong type", `{"statement":"S","options":["a","b","c","d","e"],"correctIndex":"A"}`, true},
		{"index out of range", `{"statement":"S","options":["a","b","c","d","e"],"correctIndex":5}`, true},
		{"too few options", `{"statement":"S","options":["a","b"],"correctIndex":0}`, true},
		{"enum violation", `{"statement":"S","options":["a","b","c","d","e"],"correctIndex":0,"subject":"direito"}`, true},
		{"empty statement", `{"statement":"","options":["a","b","c","d","e"],"correctIndex":0}`, true},
		{"not JSON", `Aqui está a questão: {`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(questionSchema(5), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var invalid *ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ErrInvalidResponse, got %T", err)
			}
			if string(invalid.Content) != tt.raw {
				t.Errorf("Content = %s, want the raw response", invalid.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Fatalf("nil schema should skip validation, got %v", err)
	}
}

func TestValidateResponse_VariantsShareName(t *testing.T) {
	four := `{"statement":"S","options":["a","b","c","d"],"correctIndex":0}`
	if err := validateResponse(questionSchema(5), json.RawMessage(four)); err == nil {
		t.Fatal("4 options accepted by the 5-option schema")
	}
	if err := validateResponse(questionSchema(4), json.RawMessage(four)); err != nil {
		t.Fatalf("4-option schema rejected 4 options: %v", err)
	}
}

func TestValidateResponse_BrokenSchema(t *testing.T) {
	s := &Schema{Name: "broken", Definition: map[string]any{"type": 42}}
	err := validateResponse(s, json.RawMessage(`{}`))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestCompileSchema_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := compileSchema(questionSchema(5)); err != nil {
				t.Errorf("compileSchema: %v", err)
			}
		}()
	}
	wg.Wait()
}
