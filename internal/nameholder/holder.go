// Package nameholder guesses the person a document belongs to. The ranking
// is a position heuristic, not a correctness oracle: earlier mentions score
// higher, and the caller gets the full candidate list alongside the winner.
package nameholder

import (
	"regexp"
	"sort"
	"strings"

	"docparse/internal/entities"
)

// NameInfo carries the scored candidates for the document holder.
type NameInfo struct {
	PrimaryName    string   `json:"primary_name,omitempty"`
	CandidateNames []string `json:"candidate_names"`
}

// salutationRules capture role- or honorific-prefixed names.
// The case-insensitive flag is scoped to the prefix so the name capture
// still requires capitalized tokens.
var salutationRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i:name|holder|account holder|contact):\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
	regexp.MustCompile(`(?i:mr\.|mrs\.|ms\.|dr\.)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
	regexp.MustCompile(`(?i:prepared by):\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
	regexp.MustCompile(`(?i:issued to):\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
	regexp.MustCompile(`(?i:attention):\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
	regexp.MustCompile(`(?i:attn):\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
}

const (
	minNameTokens = 2
	minNameChars  = 5
)

type scoredName struct {
	name  string
	score float64
}

// Extract collects holder-name candidates from salutation patterns and the
// recognizer's person entities, filters implausible ones, and ranks the rest
// by how early they first appear in the text.
func Extract(text string, ents entities.Entities) NameInfo {
	seen := make(map[string]struct{})
	var candidates []string

	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		candidates = append(candidates, name)
	}

	for _, rule := range salutationRules {
		for _, m := range rule.FindAllStringSubmatch(text, -1) {
			add(m[1])
		}
	}
	for _, person := range ents.Of(entities.Person) {
		add(person)
	}

	var scored []scoredName
	for _, name := range candidates {
		if len(strings.Fields(name)) < minNameTokens || len(name) < minNameChars {
			continue
		}
		scored = append(scored, scoredName{name: name, score: positionScore(text, name)})
	}

	// Stable sort keeps insertion order among ties, so output is deterministic.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	info := NameInfo{CandidateNames: make([]string, 0, len(scored))}
	for _, s := range scored {
		info.CandidateNames = append(info.CandidateNames, s.name)
	}
	if len(scored) > 0 {
		info.PrimaryName = scored[0].name
	}
	return info
}

// positionScore maps the first occurrence offset to [0,1]; earlier is higher.
func positionScore(text, name string) float64 {
	if len(text) == 0 {
		return 0
	}
	offset := strings.Index(text, name)
	if offset < 0 {
		return 0
	}
	score := 1 - float64(offset)/float64(len(text))
	if score < 0 {
		return 0
	}
	return score
}
