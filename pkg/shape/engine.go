package shape

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/usestring/schemainfer/internal/query"
	"github.com/usestring/schemainfer/pkg/jsonschema"
	"github.com/usestring/schemainfer/pkg/jsonvalue"
)

// ErrNoValues is returned when a jq query selects nothing from the samples
// and no base schema is available.
var ErrNoValues = errors.New("query selected no values")

// Engine runs inference over parsed samples.
type Engine struct {
	query *query.Engine
}

// NewEngine creates a new shape analysis engine. A nil query engine gets an
// uncapped default.
func NewEngine(q *query.Engine) *Engine {
	if q == nil {
		q = query.NewEngine(0)
	}
	return &Engine{query: q}
}

// Analyze infers a schema from values. Labels name the values in jq error
// messages and may be nil.
func (e *Engine) Analyze(ctx context.Context, values []jsonvalue.Value, labels []string, opts Options) (*Result, error) {
	result := &Result{AllMatch: true}

	if opts.Query != "" {
		selected, err := e.query.Select(ctx, values, labels, opts.Query, false)
		if err != nil {
			return nil, err
		}
		if len(selected.Values) == 0 && opts.Base == nil {
			if len(selected.Errors) > 0 {
				return nil, fmt.Errorf("%w: %s", ErrNoValues, selected.Errors[0])
			}
			return nil, ErrNoValues
		}
		values = selected.Values
		result.QueryErrors = selected.Errors
		result.Truncated = selected.Truncated
	}

	var merged *jsonschema.Fragment
	if len(values) > 0 {
		inferred, err := jsonschema.InferSamples(values...)
		if err != nil {
			return nil, err
		}
		merged = inferred.Fragment
		result.SampleCount = inferred.SampleCount
		result.AllMatch = inferred.AllMatch
	}
	merged = jsonschema.Merge(opts.Base, merged)
	if merged == nil {
		return nil, jsonschema.ErrEmptyInput
	}

	schema, err := Render(merged, opts.Style, opts.AdditionalProperties)
	if err != nil {
		return nil, err
	}
	result.Fragment = merged
	result.Schema = schema

	if opts.IncludeStats {
		depth := opts.StatsMaxDepth
		if depth <= 0 {
			depth = jsonschema.DefaultStatsMaxDepth
		}
		result.FieldStats = jsonschema.ComputeFieldStatsDepth(merged, values, depth)
	}

	return result, nil
}

// MergeDocuments merges schema documents previously produced by Analyze in
// the draft07 style and renders the result.
func (e *Engine) MergeDocuments(docs []jsonvalue.Value, opts Options) (*Result, error) {
	if len(docs) == 0 {
		return nil, jsonschema.ErrEmptyInput
	}

	merged := opts.Base
	for i, doc := range docs {
		f, err := jsonschema.FromSchema(doc)
		if err != nil {
			return nil, fmt.Errorf("schema %d: %w", i, err)
		}
		merged = jsonschema.Merge(merged, f)
	}

	schema, err := Render(merged, opts.Style, opts.AdditionalProperties)
	if err != nil {
		return nil, err
	}
	return &Result{
		Fragment: merged,
		Schema:   schema,
		AllMatch: true,
	}, nil
}

// ParseSchema reads a draft07 schema document from JSON text.
func ParseSchema(data []byte) (*jsonschema.Fragment, error) {
	v, err := jsonvalue.ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return jsonschema.FromSchema(v)
}

// Render converts f to a schema document in the given style.
func Render(f *jsonschema.Fragment, style Style, additionalProperties *bool) (jsonvalue.Value, error) {
	opts := jsonschema.RenderOptions{AdditionalProperties: additionalProperties}

	switch style {
	case "", StyleDraft07:
		return opts.Document(f), nil
	case StyleAnyOf:
		return remarshal(opts.Invopop(f))
	case StyleOpenAPI:
		return remarshal(opts.OpenAPI(f))
	}
	return jsonvalue.Value{}, fmt.Errorf("unknown style %q", style)
}

// remarshal brings a library schema type back into the value model, keeping
// the key order its MarshalJSON produces.
func remarshal(v any) (jsonvalue.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return jsonvalue.Value{}, fmt.Errorf("marshal schema: %w", err)
	}
	return jsonvalue.ParseJSON(data)
}
