package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "broker list with padding and repeats",
			input:    []string{" kafka-1:9092 ", "kafka-2:9092", "kafka-1:9092", ""},
			expected: []string{"kafka-1:9092", "kafka-2:9092"},
		},
		{
			name:     "blank-only elements dropped",
			input:    []string{"  ", "\t"},
			expected: []string{},
		},
		{
			name:     "case is preserved",
			input:    []string{"Foo", "foo"},
			expected: []string{"Foo", "foo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupeAndTrimLower(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:  "checksum casings collapse to one wallet",
			input: []string{"0xF39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"},
			expected: []string{
				"0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266",
			},
		},
		{
			name:     "trims before folding",
			input:    []string{"  0xABC ", "0xabc", "0xDEF"},
			expected: []string{"0xabc", "0xdef"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrimLower(tt.input))
		})
	}
}
