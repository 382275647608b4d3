package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "clean JSON passes through",
			input:    `{"questions":[]}`,
			expected: `{"questions":[]}`,
		},
		{
			name:     "json fence stripped",
			input:    "```json\n{\"questions\":[]}\n```",
			expected: `{"questions":[]}`,
		},
		{
			name:     "bare fence stripped",
			input:    "```\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "prose before and after discarded",
			input:    "Here is your quiz:\n{\"a\":1}\nHope this helps!",
			expected: `{"a":1}`,
		},
		{
			name:     "whitespace trimmed",
			input:    "  \n {\"a\":1} \n ",
			expected: `{"a":1}`,
		},
		{
			name:     "no braces returns trimmed input",
			input:    "  sorry, I cannot do that  ",
			expected: "sorry, I cannot do that",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "lone opening brace returns trimmed input",
			input:    "{ incomplete",
			expected: "{ incomplete",
		},
		{
			name:     "inner braces kept intact",
			input:    "noise {\"a\":{\"b\":2}} noise",
			expected: `{"a":{"b":2}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		`{"questions":[]}`,
		"```json\n{\"a\":1}\n```",
		"prose {\"a\":1} prose",
		"no json here",
		"",
		"}{",
	}

	for _, input := range inputs {
		once := Sanitize(input)
		assert.Equal(t, once, Sanitize(once), "sanitize should be idempotent for %q", input)
	}
}
