package nlp

import (
	"strings"
	"unicode"
	"unicode/utf8"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// OrganizationMarkers are capitalized words that usually close or open an
// organization name.
var OrganizationMarkers = []string{
	"Inc", "Corp", "Corporation", "LLC", "Ltd", "Limited", "GmbH", "PLC",
	"Company", "University", "Institute", "Foundation", "Association",
	"Agency", "Ministry", "Bank", "Council", "Commission",
}

type gazetteer struct {
	words   []string
	matcher *ahocorasick.Matcher
}

func newGazetteer(words []string) *gazetteer {
	return &gazetteer{
		words:   words,
		matcher: ahocorasick.NewStringMatcher(words),
	}
}

// count returns whole-word occurrences of every marker in text.
func (g *gazetteer) count(text string) int {
	hits := g.matcher.MatchThreadSafe([]byte(text))
	seen := make(map[int]bool, len(hits))
	total := 0
	for _, i := range hits {
		if seen[i] {
			continue
		}
		seen[i] = true
		total += countWord(text, g.words[i])
	}
	return total
}

// countWord counts occurrences of w not embedded in a longer word.
func countWord(text, w string) int {
	n := 0
	for start := 0; ; {
		i := strings.Index(text[start:], w)
		if i < 0 {
			return n
		}
		i += start
		end := i + len(w)
		if boundaryBefore(text, i) && boundaryAfter(text, end) {
			n++
		}
		start = end
	}
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
