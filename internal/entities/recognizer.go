// Package entities recovers typed entities (person, organization, location,
// date, money, product) from document text. The NLP model is treated as a
// black box behind the Recognizer interface: tokenized input in, typed text
// spans out, one call per document.
package entities

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Kind is an entity category.
type Kind string

const (
	Person   Kind = "PERSON"
	Org      Kind = "ORG"
	Location Kind = "GPE"
	Date     Kind = "DATE"
	Money    Kind = "MONEY"
	Product  Kind = "PRODUCT"
)

// Kinds lists every recognized entity category, in output order.
var Kinds = []Kind{Person, Org, Location, Date, Money, Product}

// Entities maps each kind to its recognized spans, deduplicated with
// first-seen order preserved.
type Entities map[Kind][]string

// Recognizer extracts typed entities from text.
type Recognizer interface {
	Recognize(text string) (Entities, error)
}

// ProseRecognizer delegates person/location spans to the pretrained prose
// model and supplements organization, date, money, and product spans with
// lexical patterns. The pretrained model emits only PERSON and GPE labels,
// so company names come out tagged PERSON; spans with a legal-suffix match
// are reclassified to ORG.
type ProseRecognizer struct{}

func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

var (
	reDateSpan    = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{4}-\d{2}-\d{2}\b|\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}\b`)
	reMoneySpan   = regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{2})?|\b\d+(?:\.\d{2})?\s?(?:USD|EUR|GBP)\b`)
	reProductSpan = regexp.MustCompile(`\b(?:PROD|SKU|STK|ITEM)-[A-Z0-9]+\b`)
	reOrgSpan     = regexp.MustCompile(`\b(?:[A-Z][\w&-]*\s+)+(?:Inc|Incorporated|LLC|LLP|Ltd|Limited|Corp|Corporation|Co|Company|Group|Holdings|Industries|Partners)\b\.?`)
)

// orgSpans finds company-name spans by their legal suffix.
func orgSpans(text string) []string {
	return reOrgSpan.FindAllString(text, -1)
}

// partOfOrg reports whether a span overlaps one of the detected company
// names, meaning the model mislabeled a company as a person.
func partOfOrg(span string, orgs []string) bool {
	for _, org := range orgs {
		if strings.Contains(org, span) || strings.Contains(span, org) {
			return true
		}
	}
	return false
}

func (r *ProseRecognizer) Recognize(text string) (Entities, error) {
	out := Entities{}
	if text == "" {
		return out, nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("nlp document: %w", err)
	}

	orgs := orgSpans(text)
	for _, org := range orgs {
		out.add(Org, org)
	}

	for _, ent := range doc.Entities() {
		switch ent.Label {
		case "PERSON":
			if partOfOrg(ent.Text, orgs) {
				continue
			}
			out.add(Person, ent.Text)
		case "ORG", "ORGANIZATION":
			out.add(Org, ent.Text)
		case "GPE", "LOC", "LOCATION":
			if partOfOrg(ent.Text, orgs) {
				continue
			}
			out.add(Location, ent.Text)
		}
	}

	for _, m := range reDateSpan.FindAllString(text, -1) {
		out.add(Date, m)
	}
	for _, m := range reMoneySpan.FindAllString(text, -1) {
		out.add(Money, m)
	}
	for _, m := range reProductSpan.FindAllString(text, -1) {
		out.add(Product, m)
	}

	return out, nil
}

// add appends a span to a kind unless it was already seen.
func (e Entities) add(kind Kind, span string) {
	for _, existing := range e[kind] {
		if existing == span {
			return
		}
	}
	e[kind] = append(e[kind], span)
}

// Of returns the spans of one kind, or nil.
func (e Entities) Of(kind Kind) []string {
	if e == nil {
		return nil
	}
	return e[kind]
}

// Static is a fixed-answer Recognizer for tests and deployments without an
// NLP model.
type Static struct {
	Result Entities
}

func (s Static) Recognize(string) (Entities, error) {
	if s.Result == nil {
		return Entities{}, nil
	}
	return s.Result, nil
}
