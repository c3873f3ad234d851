package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/schemainfer/internal/cache"
	"github.com/usestring/schemainfer/internal/config"
	"github.com/usestring/schemainfer/internal/query"
	"github.com/usestring/schemainfer/pkg/shape"
	"github.com/usestring/schemainfer/pkg/types"
)

func newTestDeps(t *testing.T) *Deps {
	t.Helper()
	c, err := cache.New[*shape.Result](16)
	require.NoError(t, err)
	return &Deps{
		Config: &config.Config{
			LoadWorkers:    2,
			MaxSamples:     100,
			MaxSampleBytes: 1 << 20,
			MaxToolSamples: 5,
			StatsMaxDepth:  config.DefaultStatsMaxDepth,
		},
		Shape: shape.NewEngine(query.NewEngine(100)),
		Cache: c,
	}
}

func schemaJSON(t *testing.T, schema any) string {
	t.Helper()
	data, err := json.Marshal(schema)
	require.NoError(t, err)
	return string(data)
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var coded *CodedError
	require.True(t, errors.As(err, &coded), "expected CodedError, got %T: %v", err, err)
	assert.Equal(t, code, coded.Code)
}

func inferSchema(t *testing.T, d *Deps, input InferSchemaInput) (types.InferSchemaOutput, error) {
	t.Helper()
	_, out, err := ToolInferSchema(d)(context.Background(), nil, input)
	return out, err
}

func TestInferSchema_JSON(t *testing.T) {
	d := newTestDeps(t)

	out, err := inferSchema(t, d, InferSchemaInput{
		Samples: []string{`{"id": 1, "name": "Alice"}`, `{"id": 2, "name": null, "tags": []}`},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.SampleCount)
	assert.False(t, out.AllMatch)
	assert.Nil(t, out.FieldStats)
	assert.NotEmpty(t, out.Hint)
	assert.JSONEq(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {
			"id": {"type": "integer"},
			"name": {"type": ["string", "null"]},
			"tags": {"type": "array", "items": {}}
		},
		"required": ["id", "name"]
	}`, schemaJSON(t, out.Schema))
}

func TestInferSchema_MultipleValuesPerSample(t *testing.T) {
	d := newTestDeps(t)

	out, err := inferSchema(t, d, InferSchemaInput{
		Samples: []string{"1 2.5", "name: x\n---\nname: y\n"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, out.SampleCount)
	assert.JSONEq(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": ["number", "object"],
		"properties": {"name": {"type": "string"}},
		"required": ["name"]
	}`, schemaJSON(t, out.Schema))
}

func TestInferSchema_ForcedFormat(t *testing.T) {
	d := newTestDeps(t)

	out, err := inferSchema(t, d, InferSchemaInput{Samples: []string{`{"a": 1}`}, Format: "yaml"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.SampleCount)

	_, err = inferSchema(t, d, InferSchemaInput{Samples: []string{"a: 1"}, Format: "json"})
	requireCode(t, err, ErrCodeParseError)
}

func TestInferSchema_Query(t *testing.T) {
	d := newTestDeps(t)

	out, err := inferSchema(t, d, InferSchemaInput{
		Samples: []string{`{"data": [{"id": 1}, {"id": 2}]}`, `{"data": "oops"}`},
		Query:   ".data[]",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.SampleCount)
	assert.True(t, out.AllMatch)
	require.Len(t, out.QueryErrors, 1)
	assert.Contains(t, out.QueryErrors[0], "sample[1]#0")
	assert.JSONEq(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {"id": {"type": "integer"}},
		"required": ["id"]
	}`, schemaJSON(t, out.Schema))
}

func TestInferSchema_Stats(t *testing.T) {
	d := newTestDeps(t)

	out, err := inferSchema(t, d, InferSchemaInput{
		Samples:      []string{`{"id": 1, "email": "a@b.c"}`, `{"id": 2}`},
		IncludeStats: true,
	})
	require.NoError(t, err)
	require.Len(t, out.FieldStats, 2)

	id := out.FieldStats[0]
	assert.Equal(t, "id", id.Path)
	assert.True(t, id.Required)
	assert.Equal(t, []any{json.Number("1"), json.Number("2")}, id.Examples)

	email := out.FieldStats[1]
	assert.Equal(t, "email", email.Path)
	assert.False(t, email.Required)
	assert.Equal(t, 0.5, email.Frequency)
	assert.Equal(t, []uint32{1}, email.MissingIn)
}

func TestInferSchema_Styles(t *testing.T) {
	d := newTestDeps(t)
	closed := false

	out, err := inferSchema(t, d, InferSchemaInput{
		Samples:              []string{`{"v": 1}`, `{"v": "x"}`},
		Style:                "anyof",
		AdditionalProperties: &closed,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {"v": {"anyOf": [{"type": "integer"}, {"type": "string"}]}},
		"required": ["v"],
		"additionalProperties": false
	}`, schemaJSON(t, out.Schema))

	out, err = inferSchema(t, d, InferSchemaInput{Samples: []string{`{"v": null}`, `{"v": true}`}, Style: "openapi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {"v": {"type": "boolean", "nullable": true}},
		"required": ["v"]
	}`, schemaJSON(t, out.Schema))
}

func TestInferSchema_Cache(t *testing.T) {
	d := newTestDeps(t)
	input := InferSchemaInput{Samples: []string{`{"a": 1}`}}

	first, err := inferSchema(t, d, input)
	require.NoError(t, err)
	second, err := inferSchema(t, d, input)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	hits, misses := d.Cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	// Different options are a different entry.
	_, err = inferSchema(t, d, InferSchemaInput{Samples: input.Samples, IncludeStats: true})
	require.NoError(t, err)
	assert.Equal(t, 2, d.Cache.Len())
}

func TestInferSchema_Errors(t *testing.T) {
	d := newTestDeps(t)

	tests := []struct {
		name  string
		input InferSchemaInput
		code  string
	}{
		{"no samples", InferSchemaInput{}, ErrCodeInvalidInput},
		{"too many samples", InferSchemaInput{Samples: []string{"1", "2", "3", "4", "5", "6"}}, ErrCodeInvalidInput},
		{"bad format", InferSchemaInput{Samples: []string{"1"}, Format: "xml"}, ErrCodeInvalidInput},
		{"bad style", InferSchemaInput{Samples: []string{"1"}, Style: "draft04"}, ErrCodeInvalidInput},
		{"malformed json", InferSchemaInput{Samples: []string{`{"a":`}}, ErrCodeParseError},
		{"blank samples", InferSchemaInput{Samples: []string{"", "  "}}, ErrCodeEmptyInput},
		{"query selects nothing", InferSchemaInput{Samples: []string{`{"a": 1}`}, Query: ".b[]?"}, ErrCodeEmptyInput},
		{"non-finite yaml", InferSchemaInput{Samples: []string{"x: .inf"}, Format: "yaml"}, ErrCodeParseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := inferSchema(t, d, tt.input)
			requireCode(t, err, tt.code)
		})
	}
}

func TestInferSchema_InvalidQuery(t *testing.T) {
	d := newTestDeps(t)

	_, err := inferSchema(t, d, InferSchemaInput{Samples: []string{"1"}, Query: ".items["})
	requireCode(t, err, ErrCodeParseError)
	assert.Contains(t, err.Error(), "invalid jq expression")
}
