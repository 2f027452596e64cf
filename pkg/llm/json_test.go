package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain array", `["a","b"]`, `["a","b"]`},
		{"fenced json", "```json\n[{\"q\":1}]\n```", `[{"q":1}]`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", "Sure! Here you go:\n[1,2,3]\nHope it helps.", `[1,2,3]`},
		{"brackets inside strings", `{"text":"use [brackets] and }"} trailing`, `{"text":"use [brackets] and }"}`},
		{"escaped quotes", `["say \"hi\" ]"]`, `["say \"hi\" ]"]`},
		{"first of two", `[1] [2]`, `[1]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Should reject replies without JSON", func(t *testing.T) {
		for _, in := range []string{"", "no json here", "[1, 2", "{]"} {
			_, err := ExtractJSON(in)
			assert.ErrorIs(t, err, ErrMalformedResponse, in)
		}
	})
}

func TestDecodeJSON(t *testing.T) {
	t.Run("Should decode into the target", func(t *testing.T) {
		var out []string
		require.NoError(t, DecodeJSON("```json\n[\"a\", \"b\"]\n```", &out))
		assert.Equal(t, []string{"a", "b"}, out)
	})

	t.Run("Should wrap type mismatches as malformed", func(t *testing.T) {
		var out []string
		err := DecodeJSON(`{"a":1}`, &out)
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}
