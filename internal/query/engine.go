// Package query provides JQ-based selection of sample values.
package query

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/usestring/schemainfer/pkg/jsonvalue"
)

// Engine executes JQ queries against parsed samples.
type Engine struct {
	maxResults int
}

// NewEngine creates a new query engine. A positive maxResults caps the number
// of values a single Select call returns.
func NewEngine(maxResults int) *Engine {
	return &Engine{maxResults: maxResults}
}

// Result contains the values selected by a JQ query.
type Result struct {
	Values         []jsonvalue.Value // Extracted values, in input order
	Errors         []string          // Per-item errors (e.g., type mismatch)
	RawCount       int               // Count before deduplication
	MatchedIndices []int             // Indices of inputs that produced values
	Truncated      bool              // The result cap was reached
}

// Compile parses and compiles a JQ expression.
func (e *Engine) Compile(expression string) (*gojq.Code, error) {
	q, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return code, nil
}

// Select runs expression against every input and collects each output value
// as a new sample, null included. Outputs keep the member order and number
// literals of the input they were taken from. Labels identify inputs in error
// messages.
func (e *Engine) Select(ctx context.Context, inputs []jsonvalue.Value, labels []string, expression string, deduplicate bool) (*Result, error) {
	code, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Values: make([]jsonvalue.Value, 0, len(inputs)),
	}

	seen := make(map[string]bool)
	seenErrors := make(map[string]bool) // Deduplicate similar errors

	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		label := fmt.Sprintf("sample[%d]", i)
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}

		matched := false
		source := newSourceIndex(input)
		iter := code.RunWithContext(ctx, toJQ(input))
		for {
			if e.maxResults > 0 && len(result.Values) >= e.maxResults {
				result.Truncated = true
				break
			}

			v, ok := iter.Next()
			if !ok {
				break
			}

			if err, isErr := v.(error); isErr {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil, err
				}
				addError(result, seenErrors, formatJQError(label, err))
				continue
			}

			val, err := source.convert(v)
			if err != nil {
				addError(result, seenErrors, fmt.Sprintf("%s: %v", label, err))
				continue
			}

			result.RawCount++
			matched = true

			if deduplicate {
				key := val.String()
				if seen[key] {
					continue
				}
				seen[key] = true
			}

			result.Values = append(result.Values, val)
		}

		if matched {
			result.MatchedIndices = append(result.MatchedIndices, i)
		}
		if result.Truncated {
			break
		}
	}

	return result, nil
}

func addError(r *Result, seen map[string]bool, msg string) {
	if seen[msg] {
		return
	}
	seen[msg] = true
	r.Errors = append(r.Errors, msg)
}

// toJQ converts a value to the representation gojq operates on: int for
// integers that fit, *big.Int for larger integer literals, float64 otherwise.
func toJQ(v jsonvalue.Value) any {
	switch v.Kind() {
	case jsonvalue.KindBool:
		return v.AsBool()
	case jsonvalue.KindNumber:
		if v.IsInteger() {
			if i, err := strconv.ParseInt(v.Literal(), 10, 64); err == nil {
				return int(i)
			}
			return int(v.AsFloat())
		}
		if n, ok := new(big.Int).SetString(v.Literal(), 10); ok {
			return n
		}
		// jq clamps literals beyond the float64 range
		if f := v.AsFloat(); math.IsInf(f, 0) {
			return math.Copysign(math.MaxFloat64, f)
		}
		return v.AsFloat()
	case jsonvalue.KindString:
		return v.AsString()
	case jsonvalue.KindArray:
		out := make([]any, len(v.Items()))
		for i, item := range v.Items() {
			out[i] = toJQ(item)
		}
		return out
	case jsonvalue.KindObject:
		out := make(map[string]any, v.Len())
		for _, m := range v.Members() {
			out[m.Key] = toJQ(m.Value)
		}
		return out
	}
	return nil
}

// formatJQError creates a helpful error message for JQ execution errors.
//
// Runtime JQ errors (like "cannot iterate over: null") are plain errors
// without typed wrappers in gojq, so hints are chosen by string matching.
func formatJQError(label string, err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return fmt.Sprintf("%s: query halted", label)
		}
		return fmt.Sprintf("%s: query halted with: %v", label, haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this sample)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}

	return fmt.Sprintf("%s: %s%s", label, errStr, hint)
}
