package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]any
	}{
		{
			name: "object wrapped in prose",
			text: `prefix {"a":1,"b":{"c":2}} suffix`,
			want: map[string]any{"a": float64(1), "b": map[string]any{"c": float64(2)}},
		},
		{
			name: "bare object",
			text: `{"answer":"yes"}`,
			want: map[string]any{"answer": "yes"},
		},
		{
			name: "no braces",
			text: "no braces here",
			want: nil,
		},
		{
			name: "truncated object",
			text: `here you go: {"questions":[{"text":"wh`,
			want: nil,
		},
		{
			name: "closing brace before opening",
			text: `} oops {`,
			want: nil,
		},
		{
			name: "two objects make the greedy span unparseable",
			text: `{"a":1} and {"b":2}`,
			want: nil,
		},
		{
			name: "markdown fenced object",
			text: "```json\n{\"x\": true}\n```",
			want: map[string]any{"x": true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Object(tt.text))
		})
	}
}

func TestDecode(t *testing.T) {
	var payload struct {
		Difficulty string `json:"difficulty"`
		Count      int    `json:"count"`
	}
	ok := Decode(`Sure! {"difficulty":"easy","count":6} Hope that helps.`, &payload)
	require.True(t, ok)
	assert.Equal(t, "easy", payload.Difficulty)
	assert.Equal(t, 6, payload.Count)

	assert.False(t, Decode("plain prose", &payload))
}

func TestBalancedObject(t *testing.T) {
	// The balanced scan stops at the first complete object instead of
	// spanning to the final brace in the text.
	got := BalancedObject(`{"a":1} trailing {"b":2}`)
	assert.Equal(t, map[string]any{"a": float64(1)}, got)

	got = BalancedObject(`note {"s":"brace } in string","n":{"d":1}} end`)
	assert.Equal(t, map[string]any{"s": "brace } in string", "n": map[string]any{"d": float64(1)}}, got)

	assert.Nil(t, BalancedObject(`{"never":"closed"`))
	assert.Nil(t, BalancedObject("nothing structured"))
}
