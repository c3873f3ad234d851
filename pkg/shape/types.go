// Package shape runs the inference pipeline over parsed samples: optional jq
// sub-selection, schema inference, merging with previously inferred schemas,
// rendering in the requested style and field statistics.
package shape

import (
	"fmt"
	"strings"

	"github.com/usestring/schemainfer/pkg/jsonschema"
	"github.com/usestring/schemainfer/pkg/jsonvalue"
)

// Style selects the dialect a schema is rendered in.
type Style string

const (
	// StyleDraft07 renders type unions as type arrays.
	StyleDraft07 Style = "draft07"
	// StyleAnyOf renders type unions as anyOf branches.
	StyleAnyOf Style = "anyof"
	// StyleOpenAPI renders an OpenAPI 3.0 schema object.
	StyleOpenAPI Style = "openapi"
)

// ParseStyle validates a user-supplied style name. Empty means StyleDraft07.
func ParseStyle(s string) (Style, error) {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StyleDraft07, nil
	case StyleDraft07, StyleAnyOf, StyleOpenAPI:
		return st, nil
	}
	return "", fmt.Errorf("unknown style %q (want draft07, anyof or openapi)", s)
}

// Options controls a single Analyze call.
type Options struct {
	// Query is a jq expression applied to every sample; each output value
	// becomes a sample. Empty means the samples are used as they are.
	Query string

	// Base is merged into the inferred fragment, so new samples extend a
	// previously inferred schema.
	Base *jsonschema.Fragment

	Style                Style
	AdditionalProperties *bool

	IncludeStats  bool
	StatsMaxDepth int // Default: jsonschema.DefaultStatsMaxDepth
}

// Result is the outcome of an analysis.
type Result struct {
	Fragment    *jsonschema.Fragment   // Merged fragment
	Schema      jsonvalue.Value        // Rendered document in the requested style
	SampleCount int                    // Values that went into inference
	AllMatch    bool                   // Every sample had the same shape
	FieldStats  []jsonschema.FieldStat // Set when Options.IncludeStats is true
	QueryErrors []string               // Per-sample jq errors
	Truncated   bool                   // The jq result cap was reached
}
