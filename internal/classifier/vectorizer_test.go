package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorizerFitCapsVocabulary(t *testing.T) {
	v := NewVectorizer(5)
	matrix := v.Fit([]string{
		"alpha beta gamma delta",
		"alpha beta epsilon zeta eta",
		"alpha theta iota kappa",
	})

	require.Len(t, matrix, 3)
	assert.LessOrEqual(t, len(v.Vocabulary), 5)
	assert.Len(t, v.IDF, len(v.Vocabulary))
	assert.True(t, v.Fitted())
}

func TestVectorizerTransformIgnoresOOV(t *testing.T) {
	v := NewVectorizer(100)
	v.Fit([]string{"invoice total tax", "receipt payment total"})

	vec := v.Transform("completely unseen words only")
	for _, x := range vec {
		assert.Zero(t, x)
	}
}

func TestVectorizerTransformDeterministic(t *testing.T) {
	v := NewVectorizer(100)
	v.Fit([]string{"invoice total tax due", "receipt payment total cash"})

	first := v.Transform("invoice total due")
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, v.Transform("invoice total due"))
	}
	assert.NotZero(t, sum(first))
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func TestVectorizerBigrams(t *testing.T) {
	v := NewVectorizer(100)
	v.Fit([]string{"amount due now", "amount due later"})

	_, hasBigram := v.Vocabulary["amount due"]
	assert.True(t, hasBigram, "fitted vocabulary should contain bigrams")
}
