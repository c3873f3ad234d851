package jsonvalue

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		integer bool
		out     string
	}{
		{"small int", "42", true, "42"},
		{"negative zero", "-0", true, "-0"},
		{"whole float", "1.0", true, "1.0"},
		{"exponent whole", "1e3", true, "1e3"},
		{"fraction", "1.5", false, "1.5"},
		{"int64 max", "9223372036854775807", true, "9223372036854775807"},
		{"beyond int64", "9223372036854775808", false, "9223372036854775808"},
		{"huge exponent", "1e300", false, "1e300"},
		{"overflow", "1e400", false, "1e400"},
		{"negative overflow", "-1e400", false, "-1e400"},
		{"underflow", "1e-400", false, "1e-400"},
		{"hex float canonicalised", "0x1p-2", false, "0.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Number(tt.literal)
			require.NoError(t, err)
			assert.Equal(t, KindNumber, v.Kind())
			assert.Equal(t, tt.integer, v.IsInteger())
			assert.Equal(t, tt.out, v.Literal())
		})
	}
}

func TestNumberRejectsNonFinite(t *testing.T) {
	for _, lit := range []string{"NaN", "Inf", "-Inf"} {
		t.Run(lit, func(t *testing.T) {
			_, err := Number(lit)
			assert.ErrorIs(t, err, ErrNonFinite)
		})
	}

	_, err := Float(math.Inf(1))
	assert.ErrorIs(t, err, ErrNonFinite)

	_, err = Number("abc")
	assert.Error(t, err)
}

func TestFloat(t *testing.T) {
	v, err := Float(3)
	require.NoError(t, err)
	assert.True(t, v.IsInteger())
	assert.Equal(t, "3", v.Literal())

	v, err = Float(0.5)
	require.NoError(t, err)
	assert.False(t, v.IsInteger())
	assert.Equal(t, "0.5", v.Literal())
}

func TestGetReturnsFirstMember(t *testing.T) {
	obj := Object(
		Member{Key: "a", Value: Int(1)},
		Member{Key: "a", Value: String("x")},
	)
	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.True(t, v.IsInteger())

	_, ok = obj.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 2, obj.Len())
}

func TestEqual(t *testing.T) {
	one, _ := Number("1.0")
	assert.True(t, Equal(Int(1), one))
	assert.True(t, Equal(Array(Null(), Bool(true)), Array(Null(), Bool(true))))
	assert.False(t, Equal(Array(Null()), Array(Bool(false))))
	assert.False(t, Equal(
		Object(Member{Key: "a", Value: Int(1)}, Member{Key: "b", Value: Int(2)}),
		Object(Member{Key: "b", Value: Int(2)}, Member{Key: "a", Value: Int(1)}),
	))
	assert.False(t, Equal(String("1"), Int(1)))

	tiny, _ := Number("1e-400")
	huge, _ := Number("1e400")
	bigger, _ := Number("2e400")
	zero, _ := Number("0.0")
	assert.True(t, Equal(huge, huge))
	assert.False(t, Equal(huge, bigger))
	assert.False(t, Equal(tiny, zero))
}

func TestFromAny(t *testing.T) {
	v, err := FromAny(map[string]any{
		"b":    []any{1, 2.5, "x", nil, true},
		"a":    json.Number("12"),
		"big":  new(big.Int).Lsh(big.NewInt(1), 70),
		"uint": uint64(math.MaxUint64),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":12,"b":[1,2.5,"x",null,true],"big":1180591620717411303424,"uint":18446744073709551615}`, v.String())

	_, err = FromAny(struct{}{})
	var ute *UnsupportedTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "struct {}", ute.Type)

	_, err = FromAny([]any{math.NaN()})
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestInterface(t *testing.T) {
	v, err := ParseJSON([]byte(`{"n":1.50,"s":"x","l":[null,false],"o":{}}`))
	require.NoError(t, err)

	got := v.Interface().(map[string]any)
	assert.Equal(t, json.Number("1.50"), got["n"])
	assert.Equal(t, "x", got["s"])
	assert.Equal(t, []any{nil, false}, got["l"])
	assert.Equal(t, map[string]any{}, got["o"])
}
