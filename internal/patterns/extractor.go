package patterns

import (
	"regexp"
	"strings"

	"docparse/constants"
	"docparse/internal/entities"
)

// Extract runs every rule for the given document type over text and returns
// the matched values per field. Fields with no matches are absent. Values are
// deduplicated; first-occurrence order makes the output deterministic.
func Extract(text string, docType constants.DocumentType) map[string][]string {
	results := make(map[string][]string)

	for field, rule := range rulesFor(docType) {
		values := matchAll(rule, text)
		if len(values) > 0 {
			results[field] = values
		}
	}

	return results
}

// ExtractInvoice layers entity-recognizer output over the invoice rule set.
// Pattern matches always win; entity-derived values only fill fields the
// rules missed: the first person entity is split into first/last name tokens
// and the first location entity stands in for the city.
func ExtractInvoice(text string, ents entities.Entities) map[string][]string {
	results := Extract(text, constants.Invoice)

	if persons := ents.Of(entities.Person); len(persons) > 0 {
		for _, person := range persons {
			parts := strings.Fields(person)
			if len(parts) < 2 {
				continue
			}
			if _, ok := results[FieldFirstName]; !ok {
				results[FieldFirstName] = []string{parts[0]}
			}
			if _, ok := results[FieldLastName]; !ok {
				results[FieldLastName] = []string{parts[len(parts)-1]}
			}
			break
		}
	}

	if locations := ents.Of(entities.Location); len(locations) > 0 {
		if _, ok := results[FieldCity]; !ok {
			results[FieldCity] = dedup(locations)
		}
	}

	return results
}

// matchAll collects capture-group values (or whole matches for group-less
// rules), trimmed and deduplicated.
func matchAll(rule *regexp.Regexp, text string) []string {
	var values []string
	for _, m := range rule.FindAllStringSubmatch(text, -1) {
		if len(m) == 1 {
			values = append(values, strings.TrimSpace(m[0]))
			continue
		}
		for _, group := range m[1:] {
			group = strings.TrimSpace(group)
			if group != "" {
				values = append(values, group)
			}
		}
	}
	return dedup(values)
}

func dedup(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
