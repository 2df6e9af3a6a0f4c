package canon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"negative int", int64(-100), "-100"},
		{"float", 1.5, "1.5"},
		{"integral float", 3.0, "3"},
		{"bool", true, "true"},
		{"null", nil, "null"},
		{"empty array", []any{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"typed slice", []int{3, 1, 2}, "[3,1,2]"},
		{"no html escaping", "<a&b>", `"<a&b>"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalSortsKeysRecursively(t *testing.T) {
	value := map[string]any{
		"zebra": 1,
		"alpha": map[string]any{"b": 1, "a": 2},
		"beta":  []any{map[string]any{"y": 1, "x": 2}, 3},
	}

	result, err := Marshal(value)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":{"a":2,"b":1},"beta":[{"x":2,"y":1},3],"zebra":1}`, string(result))
}

func TestMarshalStructUsesJSONTags(t *testing.T) {
	type item struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	result, err := Marshal(item{Name: "widget", Count: 3})
	require.NoError(t, err)
	assert.Equal(t, `{"count":3,"name":"widget"}`, string(result))
}

func TestMarshalUTF16KeyOrder(t *testing.T) {
	// U+1F600 encodes as surrogates 0xD83D 0xDE00, which sort before U+FF21
	// in UTF-16 even though its UTF-8 bytes sort after.
	value := map[string]any{"Ａ": 1, "\U0001F600": 2}

	result, err := Marshal(value)
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001F600\":2,\"Ａ\":1}", string(result))
}

func TestMarshalNFCNormalizes(t *testing.T) {
	decomposed := "e\u0301"

	result, err := Marshal(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(result))
}

func TestMarshalLineSeparatorsLiteral(t *testing.T) {
	result, err := Marshal("a\u2028b")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\"", string(result))

	// A literal backslash followed by the text u2028 stays escaped.
	result, err = Marshal(`a\u2028b`)
	require.NoError(t, err)
	assert.Equal(t, `"a\\u2028b"`, string(result))
}

func TestMarshalRejectsNonFinite(t *testing.T) {
	_, err := Marshal(map[string]any{"x": []any{1.0, nanValue()}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-finite")
}

func TestMarshalIdempotent(t *testing.T) {
	inputs := []any{
		map[string]any{"b": 2, "a": 1},
		map[string]any{"nested": map[string]any{"z": []any{"x", map[string]any{"q": 1, "p": nil}}}},
		[]any{1.25, "two", false},
		"plain",
	}

	for _, in := range inputs {
		first, err := Marshal(in)
		require.NoError(t, err)

		decoded, err := Decode(first)
		require.NoError(t, err)

		second, err := Marshal(decoded)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second))
	}
}

func TestEncodeFallsBackForUnsupported(t *testing.T) {
	ch := make(chan int)
	out := Encode(ch)
	assert.True(t, json.Valid([]byte(out)))
	assert.Contains(t, out, "0x")
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		input any
		kind  string
	}{
		{nil, "null"},
		{true, "boolean"},
		{5, "number"},
		{2.5, "number"},
		{"s", "string"},
		{[]string{"a"}, "array"},
		{map[string]int{"a": 1}, "object"},
		{struct{ A int }{1}, "object"},
		{func() {}, "function"},
		{make(chan int), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, KindOf(tt.input), "%#v", tt.input)
	}
}

func TestIsStructured(t *testing.T) {
	assert.True(t, IsStructured(map[string]any{}))
	assert.True(t, IsStructured([]int{1}))
	assert.False(t, IsStructured("abc"))
	assert.False(t, IsStructured(nil))
	assert.False(t, IsStructured(7))
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	_, err := Decode([]byte(`{"a":1} {"b":2}`))
	require.Error(t, err)
}

func nanValue() float64 {
	zero := 0.0
	return zero / zero
}
