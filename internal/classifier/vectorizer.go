package classifier

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// Vectorizer turns raw text into fixed-width TF-IDF vectors over stemmed
// unigrams and bigrams. Once fitted, the vocabulary and IDF weights are
// frozen; vectors from different fitted states are not comparable.
type Vectorizer struct {
	MaxFeatures int
	Vocabulary  map[string]int
	IDF         []float64
	fitted      bool
}

const defaultMaxFeatures = 1000

func NewVectorizer(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = defaultMaxFeatures
	}
	return &Vectorizer{MaxFeatures: maxFeatures}
}

// Fit builds the capped vocabulary and IDF table from the corpus and returns
// the document-term matrix for the same texts.
func (v *Vectorizer) Fit(texts []string) [][]float64 {
	docTerms := make([]map[string]int, len(texts))
	df := make(map[string]int)

	for i, text := range texts {
		counts := termCounts(tokenize(text))
		docTerms[i] = counts
		for term := range counts {
			df[term]++
		}
	}

	// Keep the most document-frequent terms; ties break alphabetically so
	// fitting is deterministic.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}

	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	n := float64(len(texts))
	for idx, term := range terms {
		v.Vocabulary[term] = idx
		// Smoothed IDF keeps weights finite for terms present in every doc.
		v.IDF[idx] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	v.fitted = true

	matrix := make([][]float64, len(texts))
	for i, counts := range docTerms {
		matrix[i] = v.vectorize(counts)
	}
	return matrix
}

// Transform maps text through the already-fitted vocabulary. Out-of-vocabulary
// terms are ignored.
func (v *Vectorizer) Transform(text string) []float64 {
	return v.vectorize(termCounts(tokenize(text)))
}

// Fitted reports whether Fit has completed at least once.
func (v *Vectorizer) Fitted() bool {
	return v.fitted || len(v.Vocabulary) > 0
}

func (v *Vectorizer) vectorize(counts map[string]int) []float64 {
	vec := make([]float64, len(v.IDF))
	for term, count := range counts {
		idx, ok := v.Vocabulary[term]
		if !ok {
			continue
		}
		vec[idx] = float64(count) * v.IDF[idx]
	}
	// L2 normalization keeps documents of different lengths comparable.
	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// tokenize lowercases, splits on non-alphanumeric runes, and stems each word.
func tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		if stemmed, err := snowball.Stem(w, "english", false); err == nil && stemmed != "" {
			w = stemmed
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// termCounts tallies unigrams and bigrams.
func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens)*2)
	for i, tok := range tokens {
		counts[tok]++
		if i+1 < len(tokens) {
			counts[tok+" "+tokens[i+1]]++
		}
	}
	return counts
}
