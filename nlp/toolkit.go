// Package nlp provides the lightweight English text analysis the GEO scorer
// relies on: readability, named entities, question sentences and terms.
package nlp

import (
	"errors"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNoSentences is returned when text has no words to measure.
var ErrNoSentences = errors.New("nlp: text has no sentences")

// Readability holds Flesch Reading Ease and Flesch-Kincaid Grade Level.
type Readability struct {
	Score float64
	Grade float64
}

// Entities counts named entity mentions by category.
type Entities struct {
	People        int `json:"people"`
	Places        int `json:"places"`
	Organizations int `json:"organizations"`
	Total         int `json:"total"`
}

// Toolkit is the text analysis capability consumed by the scorers.
type Toolkit interface {
	Readability(text string) (Readability, error)
	Entities(text string) Entities
	Questions(text string) int
	Terms(text string) []string
}

// Prose implements Toolkit with the prose pipeline plus an organization
// gazetteer. It holds no mutable state and is safe for concurrent use.
type Prose struct {
	orgs *gazetteer
}

// New returns the default toolkit.
func New() *Prose {
	return &Prose{orgs: newGazetteer(OrganizationMarkers)}
}

func segment(text string) (*prose.Document, error) {
	return prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
}

// Readability computes both Flesch formulas over text.
func (p *Prose) Readability(text string) (Readability, error) {
	if strings.TrimSpace(text) == "" {
		return Readability{}, ErrNoSentences
	}
	doc, err := segment(text)
	if err != nil {
		return Readability{}, err
	}

	sentences := len(doc.Sentences())
	words, syllables := 0, 0
	for _, tok := range doc.Tokens() {
		if !isWord(tok.Text) {
			continue
		}
		words++
		syllables += CountSyllables(tok.Text)
	}
	return Flesch(sentences, words, syllables)
}

// Flesch applies the reading ease and grade level formulas to raw counts.
func Flesch(sentences, words, syllables int) (Readability, error) {
	if sentences == 0 || words == 0 {
		return Readability{}, ErrNoSentences
	}
	wps := float64(words) / float64(sentences)
	spw := float64(syllables) / float64(words)
	return Readability{
		Score: 206.835 - 1.015*wps - 84.6*spw,
		Grade: 0.39*wps + 11.8*spw - 15.59,
	}, nil
}

// Entities counts people, places and organizations. prose's default model
// tags PERSON and GPE; organizations fall back to the gazetteer when the
// model labels none.
func (p *Prose) Entities(text string) Entities {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return Entities{}
	}

	var e Entities
	for _, ent := range doc.Entities() {
		switch ent.Label {
		case "PERSON":
			e.People++
		case "GPE", "LOC":
			e.Places++
		case "ORG":
			e.Organizations++
		}
	}
	if e.Organizations == 0 {
		e.Organizations = p.orgs.count(text)
	}
	e.Total = e.People + e.Places + e.Organizations
	return e
}

// Questions counts sentences ending in a question mark.
func (p *Prose) Questions(text string) int {
	doc, err := segment(text)
	if err != nil {
		return 0
	}
	n := 0
	for _, s := range doc.Sentences() {
		if strings.HasSuffix(strings.TrimSpace(s.Text), "?") {
			n++
		}
	}
	return n
}

// Terms returns the case-folded word tokens of text in order.
func (p *Prose) Terms(text string) []string {
	doc, err := segment(text)
	if err != nil {
		return nil
	}
	lower := cases.Lower(language.English)
	var terms []string
	for _, tok := range doc.Tokens() {
		if isWord(tok.Text) {
			terms = append(terms, lower.String(tok.Text))
		}
	}
	return terms
}

func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

var _ Toolkit = (*Prose)(nil)
