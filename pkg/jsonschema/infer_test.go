package jsonschema

import (
	"errors"
	"testing"

	"github.com/usestring/schemainfer/pkg/jsonvalue"
)

func mustParse(t *testing.T, s string) jsonvalue.Value {
	t.Helper()
	v, err := jsonvalue.ParseJSON([]byte(s))
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return v
}

func TestClassify_PrimitiveTypes(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected TypeSet
	}{
		{"string", `"hello"`, TypeString},
		{"integer", `42`, TypeInteger},
		{"float", `3.14`, TypeNumber},
		{"boolean_true", `true`, TypeBoolean},
		{"boolean_false", `false`, TypeBoolean},
		{"null", `null`, TypeNull},
		{"array", `[]`, TypeArray},
		{"object", `{}`, TypeObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Classify(mustParse(t, tt.json))
			if f.Types != tt.expected {
				t.Errorf("expected type %s, got %s", tt.expected, f.Types)
			}
		})
	}
}

func TestClassify_IntegerDetection(t *testing.T) {
	// Whole numbers inside int64 range are integers
	tests := []struct {
		json     string
		expected TypeSet
	}{
		{`0`, TypeInteger},
		{`-1`, TypeInteger},
		{`1000000`, TypeInteger},
		{`1.0`, TypeInteger},
		{`2e2`, TypeInteger},
		{`1.5`, TypeNumber},
		{`-3.14`, TypeNumber},
		{`9223372036854775807`, TypeInteger},
		{`9223372036854775808`, TypeNumber},
		{`1e300`, TypeNumber},
		{`1e400`, TypeNumber},
		{`-1e400`, TypeNumber},
		{`1e-400`, TypeNumber},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			f := Classify(mustParse(t, tt.json))
			if f.Types != tt.expected {
				t.Errorf("%s: expected %s, got %s", tt.json, tt.expected, f.Types)
			}
		})
	}
}

func TestInfer_Documents(t *testing.T) {
	const schema = `"$schema":"http://json-schema.org/draft-07/schema#",`
	tests := []struct {
		name     string
		json     string
		expected string
	}{
		{
			name:     "string array",
			json:     `["foo","bar"]`,
			expected: `{` + schema + `"type":"array","items":{"type":"string"}}`,
		},
		{
			name:     "empty array accepts any item",
			json:     `[]`,
			expected: `{` + schema + `"type":"array","items":{}}`,
		},
		{
			name:     "mixed items in canonical order",
			json:     `["x",1]`,
			expected: `{` + schema + `"type":"array","items":{"type":["integer","string"]}}`,
		},
		{
			name:     "integer widens to number",
			json:     `[1,1.5,2]`,
			expected: `{` + schema + `"type":"array","items":{"type":"number"}}`,
		},
		{
			name:     "nullable string",
			json:     `[null,"x"]`,
			expected: `{` + schema + `"type":"array","items":{"type":["string","null"]}}`,
		},
		{
			name: "required narrows on partial presence",
			json: `[{"a":1,"b":2},{"a":3}]`,
			expected: `{` + schema + `"type":"array","items":{"type":"object",` +
				`"properties":{"a":{"type":"integer"},"b":{"type":"integer"}},"required":["a"]}}`,
		},
		{
			name: "object mixed with string keeps required",
			json: `[{"a":1},"x"]`,
			expected: `{` + schema + `"type":"array","items":{"type":["string","object"],` +
				`"properties":{"a":{"type":"integer"}},"required":["a"]}}`,
		},
		{
			name:     "empty object",
			json:     `{}`,
			expected: `{` + schema + `"type":"object","properties":{},"required":[]}`,
		},
		{
			name: "repeated key merges",
			json: `{"a":1,"b":true,"a":"x"}`,
			expected: `{` + schema + `"type":"object","properties":{"a":{"type":["integer","string"]},` +
				`"b":{"type":"boolean"}},"required":["a","b"]}`,
		},
		{
			name:     "empty array merged with populated array",
			json:     `[[],[1]]`,
			expected: `{` + schema + `"type":"array","items":{"type":"array","items":{"type":"integer"}}}`,
		},
		{
			name: "property order is first seen",
			json: `[{"z":1},{"a":1,"z":2}]`,
			expected: `{` + schema + `"type":"array","items":{"type":"object",` +
				`"properties":{"z":{"type":"integer"},"a":{"type":"integer"}},"required":["z"]}}`,
		},
		{
			name:     "scalar root",
			json:     `null`,
			expected: `{` + schema + `"type":"null"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Infer(mustParse(t, tt.json)).String()
			if got != tt.expected {
				t.Errorf("mismatch\n got: %s\nwant: %s", got, tt.expected)
			}
		})
	}
}

func TestInferMany(t *testing.T) {
	values := []jsonvalue.Value{
		mustParse(t, `{"id":1,"tags":["a"]}`),
		mustParse(t, `{"id":2.5,"tags":[],"extra":null}`),
	}
	f, err := InferMany(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"type":"object","properties":{"id":{"type":"number"},"tags":{"type":"array","items":{"type":"string"}},` +
		`"extra":{"type":"null"}},"required":["id","tags"]}`
	if got := Render(f).String(); got != want {
		t.Errorf("mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestInferMany_EmptyInput(t *testing.T) {
	_, err := InferMany(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	_, err = InferSamples()
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestInferSamples_AllMatch(t *testing.T) {
	tests := []struct {
		name     string
		samples  []string
		allMatch bool
	}{
		{"single sample", []string{`{"a":1}`}, true},
		{"same shape different values", []string{`{"a":1,"b":"x"}`, `{"b":"y","a":2}`}, true},
		{"integer then float", []string{`{"a":1}`, `{"a":1.5}`}, false},
		{"missing key", []string{`{"a":1,"b":2}`, `{"a":1}`}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := make([][]byte, len(tt.samples))
			for i, s := range tt.samples {
				samples[i] = []byte(s)
			}
			result, err := InferBytes(samples...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.SampleCount != len(tt.samples) {
				t.Errorf("expected sample count %d, got %d", len(tt.samples), result.SampleCount)
			}
			if result.AllMatch != tt.allMatch {
				t.Errorf("expected all_match %v, got %v", tt.allMatch, result.AllMatch)
			}
		})
	}
}

func TestInferBytes_ReportsBadSample(t *testing.T) {
	_, err := InferBytes([]byte(`{}`), []byte(`{oops`))
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); len(got) < 8 || got[:8] != "sample 1" {
		t.Errorf("expected error to name sample 1, got %q", got)
	}
}

func TestInferredSchema_Document(t *testing.T) {
	result, err := InferBytes([]byte(`{"a":{"b":1}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	closed := false
	got := result.Document(RenderOptions{AdditionalProperties: &closed}).String()
	want := `{"$schema":"http://json-schema.org/draft-07/schema#","type":"object",` +
		`"properties":{"a":{"type":"object","properties":{"b":{"type":"integer"}},"required":["b"],"additionalProperties":false}},` +
		`"required":["a"],"additionalProperties":false}`
	if got != want {
		t.Errorf("mismatch\n got: %s\nwant: %s", got, want)
	}
}
