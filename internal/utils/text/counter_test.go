package text_test

import (
	"testing"

	"newswire/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "ASCII text",
			input:    "hello",
			expected: 5,
		},
		{
			name:     "empty string",
			input:    "",
			expected: 0,
		},
		{
			name:     "Cyrillic text",
			input:    "новости",
			expected: 7,
		},
		{
			name:     "mixed ASCII and Cyrillic",
			input:    "hello мир",
			expected: 9,
		},
		{
			name:     "Japanese text",
			input:    "こんにちは",
			expected: 5,
		},
		{
			name:     "text with emoji",
			input:    "Hello👋",
			expected: 6,
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: 3,
		},
		{
			name:     "escaped markup",
			input:    `\*bold\*`,
			expected: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountRunes(tt.input); got != tt.expected {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}
