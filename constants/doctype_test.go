package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDocumentType(t *testing.T) {
	tests := []struct {
		input string
		want  DocumentType
		known bool
	}{
		{"invoice", Invoice, true},
		{" Receipt ", Receipt, true},
		{"agreement", Contract, true},
		{"business card", Contact, true},
		{"", General, false},
		{"mystery", General, false},
	}
	for _, tt := range tests {
		got, known := ParseDocumentType(tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, tt.known, known, "input %q", tt.input)
	}
}

func TestDocumentTypesIsACopy(t *testing.T) {
	types := DocumentTypes()
	types[0] = "mutated"
	assert.Equal(t, Invoice, DocumentTypes()[0])
}

func TestAsStringSlice(t *testing.T) {
	assert.Equal(t,
		[]string{"invoice", "receipt", "contract", "contact", "general"},
		AsStringSlice())
}
