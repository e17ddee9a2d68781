package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON untouched",
			input:    `{"basics": {"name": "Ada"}}`,
			expected: `{"basics": {"name": "Ada"}}`,
		},
		{
			name:     "json fenced block",
			input:    "```json\n{\"basics\": {}}\n```",
			expected: `{"basics": {}}`,
		},
		{
			name:     "generic fenced block",
			input:    "```\n{\"basics\": {}}\n```",
			expected: `{"basics": {}}`,
		},
		{
			name:     "fenced block with language identifier",
			input:    "```javascript\n{\"basics\": {}}\n```",
			expected: `{"basics": {}}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n{\"a\": 1}\n  ",
			expected: `{"a": 1}`,
		},
		{
			name:     "fence on first line with brace is kept",
			input:    "```{\"a\": 1}```",
			expected: `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
