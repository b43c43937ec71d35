package nameholder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docparse/internal/entities"
)

func TestExtractSalutationPatterns(t *testing.T) {
	text := "Prepared by: Maria Santos for the quarterly review. Attention: Kofi Mensah"

	info := Extract(text, nil)

	assert.Equal(t, "Maria Santos", info.PrimaryName)
	assert.Contains(t, info.CandidateNames, "Kofi Mensah")
}

func TestExtractEarlierMentionScoresHigher(t *testing.T) {
	text := "Issued to: Alpha Beta. Much later in the document we find attn: Omega Zeta appearing near the end of the text body."

	info := Extract(text, nil)

	assert.Equal(t, []string{"Alpha Beta", "Omega Zeta"}, info.CandidateNames)
	assert.Equal(t, "Alpha Beta", info.PrimaryName)
}

func TestExtractFiltersShortCandidates(t *testing.T) {
	ents := entities.Entities{
		entities.Person: {"Bo", "A B", "Single"},
	}

	info := Extract("Bo and Single and A B were mentioned", ents)

	// "Bo" and "Single" fail the two-token filter; "A B" fails min length.
	assert.Empty(t, info.CandidateNames)
	assert.Empty(t, info.PrimaryName)
}

func TestExtractMergesEntityCandidates(t *testing.T) {
	ents := entities.Entities{
		entities.Person: {"Grace Hopper"},
	}

	info := Extract("A tribute to Grace Hopper and her work", ents)

	assert.Equal(t, "Grace Hopper", info.PrimaryName)
}

func TestExtractEmptyText(t *testing.T) {
	info := Extract("", nil)
	assert.Empty(t, info.PrimaryName)
	assert.Empty(t, info.CandidateNames)
}

func TestExtractSortedDescending(t *testing.T) {
	text := "name: First Person ........................ name: Second Person ........................ name: Third Person"

	info := Extract(text, nil)

	assert.Equal(t, []string{"First Person", "Second Person", "Third Person"}, info.CandidateNames)
}
