// Package types provides shared types for schemainfer's MCP tools.
// These types are used across multiple packages and are designed for external consumption.
package types

import (
	"bytes"
	"encoding/json"
)

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a tool output field must be any (instead of json.RawMessage)
// to satisfy the MCP SDK's schema validation. Numbers decode as json.Number
// so integers beyond 2^53 keep their digits.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
