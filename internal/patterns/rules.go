// Package patterns performs deterministic field extraction with per-type
// regular-expression tables, plus invoice-specific entity augmentation and
// contact extraction with phone validation.
package patterns

import (
	"regexp"

	"docparse/constants"
)

// Field names shared with the invoice augmentation layer.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldCity      = "city"
	FieldPhone     = "phone"
)

// ruleTable maps each document type to its named extraction rules. Compiled
// once at init; never mutated at runtime. Unknown types fall back to general.
var ruleTable = map[constants.DocumentType]map[string]*regexp.Regexp{
	constants.Invoice: {
		"invoice_number": regexp.MustCompile(`(?i)(?:invoice|inv)\.?\s*#?\s*([A-Z0-9-]+)`),
		"date":           regexp.MustCompile(`(?i)(?:date|invoice date):?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		"due_date":       regexp.MustCompile(`(?i)(?:due date|due):?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		"total_amount":   regexp.MustCompile(`(?i)(?:total|amount due|balance):?\s*(\$\d+(?:\.\d{2})?)`),
		"tax":            regexp.MustCompile(`(?i)(?:tax|vat):?\s*(\$\d+(?:\.\d{2})?)`),
		FieldFirstName:   regexp.MustCompile(`(?i)(?:first name|given name):?\s*([A-Za-z]+)`),
		FieldLastName:    regexp.MustCompile(`(?i)(?:last name|surname|family name):?\s*([A-Za-z]+)`),
		"email":          regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`),
		"product_id":     regexp.MustCompile(`(?i)(?:product id|product code|item #):?\s*([A-Z0-9-]+)`),
		"qty":            regexp.MustCompile(`(?i)(?:quantity|qty):?\s*(\d+)`),
		"amount":         regexp.MustCompile(`(?i)(?:amount|price):?\s*(\$\d+(?:\.\d{2})?)`),
		"invoice_date":   regexp.MustCompile(`(?i)(?:invoice date|date issued):?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		"address":        regexp.MustCompile(`(\d+\s+[\w\s]+,?\s*[A-Za-z\s]+,?\s*[A-Z]{2}\s*\d{5})`),
		FieldCity:        regexp.MustCompile(`(?i)city:?\s*([A-Za-z\s]+?)(?:\s*,|\s+[A-Z]{2}\b)`),
		"stock_code":     regexp.MustCompile(`(?i)(?:stock code|sku):?\s*([A-Z0-9-]+)`),
		"job":            regexp.MustCompile(`(?i)(?:job|project|work order):?\s*([A-Z0-9-]+)`),
	},
	constants.Receipt: {
		"date":           regexp.MustCompile(`(?i)(?:date):?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		"total":          regexp.MustCompile(`(?i)(?:total|amount):?\s*(\$\d+(?:\.\d{2})?)`),
		"payment_method": regexp.MustCompile(`(?i)(?:payment method|paid with|payment):?\s*([A-Za-z ]+)`),
	},
	constants.Contract: {
		"contract_id": regexp.MustCompile(`(?i)(?:contract|agreement)\s*#?\s*([A-Z0-9-]+)`),
		"date":        regexp.MustCompile(`(?i)(?:date|effective date):?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		"parties":     regexp.MustCompile(`(?i)(?:between|parties):?\s*([A-Za-z0-9 ,&]+)\s+and\s+([A-Za-z0-9 ,&]+)`),
		"amount":      regexp.MustCompile(`(?i)(?:amount|value):?\s*(\$\d+(?:,\d{3})*(?:\.\d{2})?)`),
		"term":        regexp.MustCompile(`(?i)(?:term|duration):?\s*(\d+\s+(?:years?|months?|days?))`),
		"buyer":       regexp.MustCompile(`(?i)(?:buyer|client):?\s*([A-Za-z0-9 ,&]+)`),
		"supplier":    regexp.MustCompile(`(?i)(?:supplier|vendor):?\s*([A-Za-z0-9 ,&]+)`),
	},
	constants.Contact: {
		"email":    regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`),
		FieldPhone: regexp.MustCompile(`(\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4})`),
		"website":  regexp.MustCompile(`(https?://\S+)`),
		"name":     regexp.MustCompile(`(?i)(?:name|contact):?\s*([A-Za-z]+\s+[A-Za-z]+)`),
		"company":  regexp.MustCompile(`(?i)(?:company|firm|organization):?\s*([A-Za-z0-9 &.,]+)`),
		"address":  regexp.MustCompile(`(\d+\s+[\w\s]+,?\s*[A-Za-z\s]+,?\s*[A-Z]{2}\s*\d{5})`),
		"zip_code": regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`),
	},
	constants.General: {
		"currency":   regexp.MustCompile(`(\$\d+(?:,\d{3})*(?:\.\d{2})?)`),
		"percentage": regexp.MustCompile(`(\d+(?:\.\d+)?%)`),
		"date":       regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	},
}

// rulesFor returns the rule set for a document type, falling back to general.
func rulesFor(docType constants.DocumentType) map[string]*regexp.Regexp {
	if rules, ok := ruleTable[docType]; ok {
		return rules
	}
	return ruleTable[constants.General]
}
