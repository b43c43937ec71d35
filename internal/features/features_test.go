package features

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docparse/internal/entities"
)

func TestBuildCounts(t *testing.T) {
	text := "Email a@b.com and c@d.org, call 212-555-0123, pay $5.00 or $1,500.00 by 03/15/2023"
	ents := entities.Entities{
		entities.Person: {"A B", "C D"},
		entities.Org:    {"Acme Corp"},
	}

	f := Build(text, ents)

	assert.Equal(t, 2, f.EmailCount)
	assert.Equal(t, 1, f.PhoneCount)
	assert.Equal(t, 2, f.CurrencyCount)
	assert.Equal(t, 1, f.DateCount)
	assert.Equal(t, 2, f.PersonCount)
	assert.Equal(t, 1, f.OrgCount)
	assert.Equal(t, len(text), f.TextLength)
}

func TestBuildEmpty(t *testing.T) {
	f := Build("", nil)
	assert.Equal(t, Features{}, f)
}

func TestBuildDeterministic(t *testing.T) {
	text := "Invoice $10.00 on 01/01/2024 for x@y.com"
	first := Build(text, nil)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Build(text, nil))
	}
}
