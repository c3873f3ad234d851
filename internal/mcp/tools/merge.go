package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemainfer/internal/cache"
	"github.com/usestring/schemainfer/pkg/jsonvalue"
	"github.com/usestring/schemainfer/pkg/shape"
	"github.com/usestring/schemainfer/pkg/types"
)

// MergeSchemasInput is the input for merge_schemas.
type MergeSchemasInput struct {
	Schemas              []string `json:"schemas" jsonschema:"draft07 schema documents previously returned by infer_schema, as JSON text"`
	AdditionalProperties *bool    `json:"additional_properties,omitempty" jsonschema:"Set additionalProperties on every object schema (unset by default)"`
}

// ToolMergeSchemas merges previously inferred schemas into one that accepts
// everything each of them accepted.
func ToolMergeSchemas(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input MergeSchemasInput) (*sdkmcp.CallToolResult, types.MergeSchemasOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input MergeSchemasInput) (*sdkmcp.CallToolResult, types.MergeSchemasOutput, error) {
		if len(input.Schemas) == 0 {
			return nil, types.MergeSchemasOutput{}, ErrInvalidInput("schemas is required")
		}
		if limit := d.Config.MaxToolSamples; limit > 0 && len(input.Schemas) > limit {
			return nil, types.MergeSchemasOutput{}, ErrInvalidInput(fmt.Sprintf("too many schemas: %d (max %d)", len(input.Schemas), limit))
		}

		key := cache.Key(append([]string{"merge_schemas", boolOption(input.AdditionalProperties)}, input.Schemas...)...)

		result, ok := d.Cache.Get(key)
		if !ok {
			docs := make([]jsonvalue.Value, len(input.Schemas))
			for i, text := range input.Schemas {
				doc, err := jsonvalue.ParseJSON([]byte(text))
				if err != nil {
					return nil, types.MergeSchemasOutput{}, ErrParse(fmt.Sprintf("schema %d", i), err)
				}
				docs[i] = doc
			}

			var err error
			result, err = d.Shape.MergeDocuments(docs, shape.Options{
				AdditionalProperties: input.AdditionalProperties,
			})
			if err != nil {
				return nil, types.MergeSchemasOutput{}, WrapAnalysisError(ctx, err)
			}
			d.Cache.Put(key, result)
		}

		schema, err := types.ToAny(result.Schema)
		if err != nil {
			return nil, types.MergeSchemasOutput{}, fmt.Errorf("failed to encode schema: %w", err)
		}

		return nil, types.MergeSchemasOutput{
			Schema:      schema,
			SchemaCount: len(input.Schemas),
			Hint:        "Use infer_schema with new samples to check whether they still fit this schema.",
		}, nil
	}
}
