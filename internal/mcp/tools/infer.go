package tools

import (
	"context"
	"fmt"
	"strconv"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemainfer/internal/cache"
	"github.com/usestring/schemainfer/internal/samples"
	"github.com/usestring/schemainfer/pkg/contenttype"
	"github.com/usestring/schemainfer/pkg/shape"
	"github.com/usestring/schemainfer/pkg/types"
)

// InferSchemaInput is the input for infer_schema.
type InferSchemaInput struct {
	Samples              []string `json:"samples" jsonschema:"Sample documents. Each entry is JSON (one or more whitespace-separated values) or YAML (one or more documents); every value is one sample"`
	Format               string   `json:"format,omitempty" jsonschema:"Sample format: auto (default), json or yaml"`
	Query                string   `json:"query,omitempty" jsonschema:"Optional jq expression run on every sample; each output value becomes a sample (e.g. '.items[]')"`
	Style                string   `json:"style,omitempty" jsonschema:"Output style: draft07 (default, unions as type arrays), anyof or openapi"`
	IncludeStats         bool     `json:"include_stats,omitempty" jsonschema:"Include per-field statistics: frequency, nullability, distinct counts, examples"`
	AdditionalProperties *bool    `json:"additional_properties,omitempty" jsonschema:"Set additionalProperties on every object schema (unset by default)"`
}

// ToolInferSchema infers a merged JSON Schema from sample documents.
func ToolInferSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, types.InferSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, types.InferSchemaOutput, error) {
		if len(input.Samples) == 0 {
			return nil, types.InferSchemaOutput{}, ErrInvalidInput("samples is required")
		}
		if limit := d.Config.MaxToolSamples; limit > 0 && len(input.Samples) > limit {
			return nil, types.InferSchemaOutput{}, ErrInvalidInput(fmt.Sprintf("too many samples: %d (max %d)", len(input.Samples), limit))
		}

		format, err := contenttype.ParseFormat(input.Format)
		if err != nil {
			return nil, types.InferSchemaOutput{}, ErrInvalidInput(err.Error())
		}
		style, err := shape.ParseStyle(input.Style)
		if err != nil {
			return nil, types.InferSchemaOutput{}, ErrInvalidInput(err.Error())
		}

		key := cache.Key(append([]string{
			"infer_schema",
			string(format),
			input.Query,
			string(style),
			strconv.FormatBool(input.IncludeStats),
			boolOption(input.AdditionalProperties),
		}, input.Samples...)...)

		result, ok := d.Cache.Get(key)
		if !ok {
			loaded, err := d.LoadSamples(ctx, format, input.Samples)
			if err != nil {
				return nil, types.InferSchemaOutput{}, WrapAnalysisError(ctx, err)
			}

			result, err = d.Shape.Analyze(ctx, samples.Values(loaded), samples.Labels(loaded), shape.Options{
				Query:                input.Query,
				Style:                style,
				AdditionalProperties: input.AdditionalProperties,
				IncludeStats:         input.IncludeStats,
				StatsMaxDepth:        d.Config.StatsMaxDepth,
			})
			if err != nil {
				return nil, types.InferSchemaOutput{}, WrapAnalysisError(ctx, err)
			}
			d.Cache.Put(key, result)
		}

		schema, err := types.ToAny(result.Schema)
		if err != nil {
			return nil, types.InferSchemaOutput{}, fmt.Errorf("failed to encode schema: %w", err)
		}

		output := types.InferSchemaOutput{
			Schema:      schema,
			SampleCount: result.SampleCount,
			AllMatch:    result.AllMatch,
			FieldStats:  types.FieldStatsFrom(result.FieldStats),
			QueryErrors: result.QueryErrors,
			Hint:        inferHint(result, style),
		}

		return nil, output, nil
	}
}

func inferHint(r *shape.Result, style shape.Style) string {
	switch {
	case r.Truncated:
		return "The query produced more values than the configured cap; the schema covers only the first ones. Narrow the query to cover everything."
	case style != shape.StyleDraft07:
		return "Only draft07 output can be passed back to merge_schemas."
	case !r.AllMatch:
		return "Samples differ in shape. Set include_stats=true to see which fields are optional or nullable."
	}
	return "Pass this schema to merge_schemas together with schemas from other sample sets to combine them."
}

func boolOption(b *bool) string {
	if b == nil {
		return "unset"
	}
	return strconv.FormatBool(*b)
}
