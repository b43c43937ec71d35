// Package features derives a fixed set of numeric signals from cleaned text.
// The counts feed diagnostics alongside classification and carry no state.
package features

import (
	"regexp"

	"docparse/internal/entities"
)

var (
	reEmail    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	rePhone    = regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	reCurrency = regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{2})?`)
	reDate     = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
)

// Features is the fixed-width numeric profile of a document.
type Features struct {
	EmailCount    int `json:"email_count"`
	PhoneCount    int `json:"phone_count"`
	CurrencyCount int `json:"currency_count"`
	DateCount     int `json:"date_count"`
	PersonCount   int `json:"person_count"`
	OrgCount      int `json:"org_count"`
	TextLength    int `json:"text_length"`
}

// Build counts lexical and entity signals in text. Pure and deterministic.
func Build(text string, ents entities.Entities) Features {
	return Features{
		EmailCount:    len(reEmail.FindAllString(text, -1)),
		PhoneCount:    len(rePhone.FindAllString(text, -1)),
		CurrencyCount: len(reCurrency.FindAllString(text, -1)),
		DateCount:     len(reDate.FindAllString(text, -1)),
		PersonCount:   len(ents.Of(entities.Person)),
		OrgCount:      len(ents.Of(entities.Org)),
		TextLength:    len(text),
	}
}
