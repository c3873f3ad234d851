package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/schemainfer/pkg/jsonvalue"
)

func parseAll(t *testing.T, docs ...string) []jsonvalue.Value {
	t.Helper()
	out := make([]jsonvalue.Value, len(docs))
	for i, d := range docs {
		v, err := jsonvalue.ParseJSON([]byte(d))
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func strs(vs []jsonvalue.Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func TestEngine_Select_Simple(t *testing.T) {
	engine := NewEngine(0)

	result, err := engine.Select(context.Background(), parseAll(t, `{"name": "John", "age": 30}`), nil, ".name", false)
	require.NoError(t, err)
	assert.Equal(t, []string{`"John"`}, strs(result.Values))
	assert.Equal(t, 1, result.RawCount)
	assert.Equal(t, []int{0}, result.MatchedIndices)
}

func TestEngine_Select_ArrayExpansion(t *testing.T) {
	engine := NewEngine(0)

	inputs := parseAll(t,
		`{"items": [{"id": 1}, {"id": 2.5}]}`,
		`{"other": true}`,
		`{"items": [{"id": 9223372036854775808}]}`,
	)
	result, err := engine.Select(context.Background(), inputs, nil, ".items[]?", false)
	require.NoError(t, err)
	assert.Equal(t, []string{`{"id":1}`, `{"id":2.5}`, `{"id":9223372036854775808}`}, strs(result.Values))
	assert.Equal(t, []int{0, 2}, result.MatchedIndices)

	id, _ := result.Values[0].Get("id")
	assert.True(t, id.IsInteger())
}

func TestEngine_Select_Deduplicate(t *testing.T) {
	engine := NewEngine(0)

	inputs := parseAll(t, `{"items": [{"name": "a"}, {"name": "a"}, {"name": "b"}]}`)
	result, err := engine.Select(context.Background(), inputs, nil, ".items[].name", true)
	require.NoError(t, err)
	assert.Equal(t, []string{`"a"`, `"b"`}, strs(result.Values))
	assert.Equal(t, 3, result.RawCount)
}

func TestEngine_Select_MaxResults(t *testing.T) {
	engine := NewEngine(3)

	inputs := parseAll(t, `{"items": [1, 2, 3, 4, 5]}`, `[6]`)
	result, err := engine.Select(context.Background(), inputs, nil, ".items[]", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, strs(result.Values))
	assert.True(t, result.Truncated)
}

func TestEngine_Select_NullsKept(t *testing.T) {
	engine := NewEngine(0)

	result, err := engine.Select(context.Background(), parseAll(t, `{"a": 1}`, `{}`), nil, ".a", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "null"}, strs(result.Values))
	assert.Equal(t, []int{0, 1}, result.MatchedIndices)

	result, err = engine.Select(context.Background(), parseAll(t, `{"a": 1}`), nil, ".b[]?", false)
	require.NoError(t, err)
	assert.Empty(t, result.Values)
}

func TestEngine_Select_KeepsSourceOrder(t *testing.T) {
	engine := NewEngine(0)

	inputs := parseAll(t,
		`{"items": [{"z": 1, "a": {"y": 2.50, "b": 1e400}}, null, {"z": 3}]}`,
		`{"m": 1.0, "k": 0, "t": 1e-400}`,
	)

	tests := []struct {
		name  string
		input jsonvalue.Value
		expr  string
		want  []string
	}{
		{"unmodified sub-objects", inputs[0], ".items[]", []string{`{"z":1,"a":{"y":2.50,"b":1e400}}`, `null`, `{"z":3}`}},
		{"scalar literals", inputs[1], ".m, .k, .t", []string{`1.0`, `0`, `1e-400`}},
		{"rebuilt object uses input key order", inputs[1], `{t: .t, k: .k, new: "x", m: .m}`, []string{`{"m":1.0,"k":0,"t":1e-400,"new":"x"}`}},
		{"deleted key", inputs[0], ".items[0] | del(.a.y)", []string{`{"z":1,"a":{"b":1e400}}`}},
		{"computed number", inputs[1], ".m + 0.5", []string{`1.5`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Select(context.Background(), []jsonvalue.Value{tt.input}, nil, tt.expr, false)
			require.NoError(t, err)
			assert.Empty(t, result.Errors)
			assert.Equal(t, tt.want, strs(result.Values))
		})
	}
}

func TestEngine_Select_RuntimeErrors(t *testing.T) {
	engine := NewEngine(0)

	inputs := parseAll(t, `{"items": null}`, `{"items": null}`, `{"items": [1]}`)
	labels := []string{"first.json", "", "third.json"}
	result, err := engine.Select(context.Background(), inputs, labels, ".items[]", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, strs(result.Values))
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "first.json")
	assert.Contains(t, result.Errors[0], "the path may not exist")
	assert.Contains(t, result.Errors[1], "sample[1]")
}

func TestEngine_Select_NonFiniteOutput(t *testing.T) {
	engine := NewEngine(0)

	result, err := engine.Select(context.Background(), parseAll(t, `1`), nil, "infinite, 2", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, strs(result.Values))
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "not finite")
}

func TestEngine_Select_InvalidExpression(t *testing.T) {
	engine := NewEngine(0)

	_, err := engine.Select(context.Background(), nil, nil, ".items[", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")
}

func TestEngine_Select_Cancelled(t *testing.T) {
	engine := NewEngine(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Select(ctx, parseAll(t, `1`), nil, ".", false)
	assert.ErrorIs(t, err, context.Canceled)
}
