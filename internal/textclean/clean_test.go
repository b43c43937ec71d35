package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "collapses whitespace",
			input:    "Invoice   #INV-1001\n\n\tTotal:  $5.00",
			expected: "Invoice #INV-1001 Total: $5.00",
		},
		{
			name:     "strips page footer",
			input:    "Summary Page 2 of 10 continued",
			expected: "Summary continued",
		},
		{
			name:     "strips confidentiality banner",
			input:    "Confidential report for Q3",
			expected: "report for Q3",
		},
		{
			name:     "strips replacement characters",
			input:    "amount� due",
			expected: "amount due",
		},
		{
			name:     "normalizes curly quotes and dashes",
			input:    "“net” terms — ‘thirty’ days – firm",
			expected: `"net" terms - 'thirty' days - firm`,
		},
		{
			name:     "trims leading and trailing space",
			input:    "  hello world  ",
			expected: "hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text already clean",
		"Page 1 of 3\n\nConfidential “Invoice” — total  $42.00 �",
		"  \t mixed whitespace   and – dashes ",
	}

	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		assert.Equal(t, once, twice, "Clean must be idempotent for %q", input)
	}
}
