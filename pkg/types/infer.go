package types

import (
	"github.com/usestring/schemainfer/pkg/jsonschema"
)

// InferSchemaOutput is the output type for the infer_schema tool.
type InferSchemaOutput struct {
	// Inferred schema document in the requested style
	Schema any `json:"schema"`

	SampleCount int  `json:"sample_count"`
	AllMatch    bool `json:"all_match"`

	// Per-field statistics, present when include_stats is set
	FieldStats []FieldStat `json:"field_stats,omitempty"`

	// jq errors for individual samples; the remaining samples were still used
	QueryErrors []string `json:"query_errors,omitempty"`

	// Hint for the next step
	Hint string `json:"hint,omitempty"`
}

// MergeSchemasOutput is the output type for the merge_schemas tool.
type MergeSchemasOutput struct {
	Schema      any    `json:"schema"`
	SchemaCount int    `json:"schema_count"`
	Hint        string `json:"hint,omitempty"`
}

// FieldStat mirrors jsonschema.FieldStat with examples as plain JSON values.
type FieldStat struct {
	Path          string   `json:"path"`
	Type          string   `json:"type"`
	Frequency     float64  `json:"frequency"`
	Required      bool     `json:"required"`
	Nullable      bool     `json:"nullable"`
	DistinctCount int      `json:"distinct_count"`
	Examples      []any    `json:"examples,omitempty"`
	MissingIn     []uint32 `json:"missing_in,omitempty"`
}

// FieldStatsFrom converts the statistics computed by pkg/jsonschema.
func FieldStatsFrom(stats []jsonschema.FieldStat) []FieldStat {
	if len(stats) == 0 {
		return nil
	}
	out := make([]FieldStat, len(stats))
	for i, s := range stats {
		out[i] = FieldStat{
			Path:          s.Path,
			Type:          s.Type,
			Frequency:     s.Frequency,
			Required:      s.Required,
			Nullable:      s.Nullable,
			DistinctCount: s.DistinctCount,
			MissingIn:     s.MissingIn,
		}
		for _, ex := range s.Examples {
			out[i].Examples = append(out[i].Examples, ex.Interface())
		}
	}
	return out
}
