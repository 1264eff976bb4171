package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountSyllables(t *testing.T) {
	tests := map[string]int{
		"cat":         1,
		"the":         1,
		"make":        1,
		"free":        1,
		"table":       2,
		"beautiful":   3,
		"readability": 5,
		"Rhythm":      1,
		"42":          0,
		"":            0,
		"don't":       1,
	}
	for word, want := range tests {
		assert.Equal(t, want, CountSyllables(word), "word %q", word)
	}
}

func TestFlesch(t *testing.T) {
	r, err := Flesch(1, 10, 10)
	require.NoError(t, err)
	// 206.835 - 1.015*10 - 84.6*1
	assert.InDelta(t, 112.085, r.Score, 1e-9)
	// 0.39*10 + 11.8*1 - 15.59
	assert.InDelta(t, 0.11, r.Grade, 1e-9)

	_, err = Flesch(0, 10, 10)
	assert.ErrorIs(t, err, ErrNoSentences)
	_, err = Flesch(1, 0, 0)
	assert.ErrorIs(t, err, ErrNoSentences)
}

func TestCountWord(t *testing.T) {
	assert.Equal(t, 2, countWord("Acme Inc and Widget Inc.", "Inc"))
	assert.Equal(t, 0, countWord("Income rose", "Inc"))
	assert.Equal(t, 1, countWord("Apple Corporation", "Corporation"))
	assert.Equal(t, 0, countWord("Apple Corporation", "Corp"))
}

func TestGazetteerCount(t *testing.T) {
	g := newGazetteer(OrganizationMarkers)
	text := "She studied at Stanford University before joining Acme Inc. The Foundation funds research."
	assert.Equal(t, 3, g.count(text))
	assert.Equal(t, 0, g.count("no organizations here"))
}

func TestProseQuestionsAndTerms(t *testing.T) {
	tk := New()

	assert.Equal(t, 1, tk.Questions("What is Go? Go is a programming language."))
	assert.Equal(t, 0, tk.Questions("Go is a programming language."))

	terms := tk.Terms("The Go way, the GO way.")
	assert.Equal(t, []string{"the", "go", "way", "the", "go", "way"}, terms)
}

func TestProseReadability(t *testing.T) {
	tk := New()

	r, err := tk.Readability("The cat sat on the mat. The dog ran to the park.")
	require.NoError(t, err)
	assert.Greater(t, r.Score, 80.0)

	_, err = tk.Readability("   ")
	assert.ErrorIs(t, err, ErrNoSentences)
}

func TestProseEntitiesTotals(t *testing.T) {
	tk := New()
	e := tk.Entities("Researchers at the Massachusetts Institute of Technology published the report.")
	assert.Equal(t, e.People+e.Places+e.Organizations, e.Total)
	assert.GreaterOrEqual(t, e.Organizations, 1)
}
