package constants

import (
	"strings"
)

// DocumentType is the categorical label assigned to a document.
type DocumentType string

const (
	Invoice  DocumentType = "invoice"
	Receipt  DocumentType = "receipt"
	Contract DocumentType = "contract"
	Contact  DocumentType = "contact"
	General  DocumentType = "general"
)

var allDocumentTypes = []DocumentType{
	Invoice,
	Receipt,
	Contract,
	Contact,
	General,
}

// DocumentTypes returns every known document type.
func DocumentTypes() []DocumentType {
	out := make([]DocumentType, len(allDocumentTypes))
	copy(out, allDocumentTypes)
	return out
}

// AsStringSlice returns every known document type as strings, for flag help
// text and report output.
func AsStringSlice() []string {
	types := DocumentTypes()
	result := make([]string, len(types))
	for i, dt := range types {
		result[i] = string(dt)
	}
	return result
}

// ParseDocumentType canonicalizes a label. Unknown or empty input maps to
// General so callers resolve the dispatch exactly once at the entry point.
func ParseDocumentType(input string) (DocumentType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return General, false
	}

	// synonyms map
	synonyms := map[string]DocumentType{
		"bill":          Invoice,
		"inv":           Invoice,
		"purchase":      Receipt,
		"agreement":     Contract,
		"tender":        Contract,
		"business card": Contact,
		"card":          Contact,
	}

	if dt, ok := synonyms[normalized]; ok {
		return dt, true
	}

	for _, dt := range allDocumentTypes {
		if normalized == string(dt) {
			return dt, true
		}
	}

	return General, false
}
