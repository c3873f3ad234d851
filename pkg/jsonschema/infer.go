// Package jsonschema infers JSON Schema (draft-07) documents from example JSON
// values.
//
// Classify turns one value into a Fragment, Merge unifies two fragments for
// the same position, and Render turns a fragment back into a JSON value. The
// package is pure: nothing here logs, blocks or keeps state between calls.
package jsonschema

import (
	"errors"
	"fmt"

	"github.com/usestring/schemainfer/pkg/jsonvalue"
)

// SchemaURI is the $schema identifier attached to every document.
const SchemaURI = "http://json-schema.org/draft-07/schema#"

// ErrEmptyInput is returned when inference is asked to fold zero samples.
var ErrEmptyInput = errors.New("jsonschema: no samples")

// InferredSchema contains a schema inferred from sample data along with metadata.
type InferredSchema struct {
	Fragment    *Fragment
	SampleCount int  // Number of samples used
	AllMatch    bool // True if every sample produced an equal fragment
}

// Document renders the merged fragment as a schema document.
func (s *InferredSchema) Document(opts RenderOptions) jsonvalue.Value {
	return opts.Document(s.Fragment)
}

// Classify builds the minimal fragment accepting v.
func Classify(v jsonvalue.Value) *Fragment {
	switch v.Kind() {
	case jsonvalue.KindBool:
		return &Fragment{Types: TypeBoolean}
	case jsonvalue.KindNumber:
		if v.IsInteger() {
			return &Fragment{Types: TypeInteger}
		}
		return &Fragment{Types: TypeNumber}
	case jsonvalue.KindString:
		return &Fragment{Types: TypeString}
	case jsonvalue.KindArray:
		return classifyArray(v)
	case jsonvalue.KindObject:
		return classifyObject(v)
	}
	return &Fragment{Types: TypeNull}
}

func classifyArray(v jsonvalue.Value) *Fragment {
	var items *Fragment
	for _, e := range v.Items() {
		items = Merge(items, Classify(e))
	}
	if items == nil {
		// never observed an element: accept anything
		items = &Fragment{}
	}
	return &Fragment{Types: TypeArray, Items: items}
}

func classifyObject(v jsonvalue.Value) *Fragment {
	props := NewProperties()
	required := make(map[string]struct{}, v.Len())
	for _, m := range v.Members() {
		c := Classify(m.Value)
		if prev, ok := props.Get(m.Key); ok {
			c = Merge(prev, c)
		}
		props.Set(m.Key, c)
		required[m.Key] = struct{}{}
	}
	return &Fragment{Types: TypeObject, Properties: props, Required: required}
}

// InferMany classifies every value and folds the fragments left to right.
func InferMany(values []jsonvalue.Value) (*Fragment, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}
	var merged *Fragment
	for _, v := range values {
		merged = Merge(merged, Classify(v))
	}
	return merged, nil
}

// Infer returns the schema document for a single value.
func Infer(v jsonvalue.Value) jsonvalue.Value {
	return Document(Classify(v))
}

// InferSamples merges the fragments of every sample and reports whether the
// samples all had the same shape.
func InferSamples(values ...jsonvalue.Value) (*InferredSchema, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}

	var first, merged *Fragment
	allMatch := true
	for i, v := range values {
		f := Classify(v)
		if i == 0 {
			first = f
		} else if allMatch && !Equal(first, f) {
			allMatch = false
		}
		merged = Merge(merged, f)
	}

	return &InferredSchema{
		Fragment:    merged,
		SampleCount: len(values),
		AllMatch:    allMatch,
	}, nil
}

// InferBytes parses each sample as a single JSON document and infers a merged
// schema. The first unparseable sample aborts with its index in the error.
func InferBytes(samples ...[]byte) (*InferredSchema, error) {
	values := make([]jsonvalue.Value, 0, len(samples))
	for i, data := range samples {
		v, err := jsonvalue.ParseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		values = append(values, v)
	}
	return InferSamples(values...)
}
