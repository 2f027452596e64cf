package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse is returned when a model reply holds no parsable JSON.
var ErrMalformedResponse = errors.New("model did not return valid JSON")

// StripFences removes markdown code fences from LLM output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ExtractJSON returns the first balanced JSON array or object in s, after
// removing code fences. Brackets inside string literals are ignored.
func ExtractJSON(s string) (string, error) {
	s = StripFences(s)
	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return "", ErrMalformedResponse
	}

	var (
		stack    []byte
		inString bool
		escaped  bool
	)
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '[', '{':
			stack = append(stack, ch)
		case ']', '}':
			if len(stack) == 0 || !matches(stack[len(stack)-1], ch) {
				return "", ErrMalformedResponse
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrMalformedResponse
}

func matches(open, close byte) bool {
	return (open == '[' && close == ']') || (open == '{' && close == '}')
}

// DecodeJSON extracts the JSON part of a model reply into out.
func DecodeJSON(reply string, out any) error {
	raw, err := ExtractJSON(reply)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
