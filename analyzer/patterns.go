package analyzer

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// Patterns holds the phrase lists behind the pattern-based GEO rules.
type Patterns struct {
	// DefinitionVerbs introduce a definition when followed by an article.
	DefinitionVerbs []string
	Articles        []string
	// ExamplePhrases introduce an illustration.
	ExamplePhrases []string
	// SchemaBonuses are the structured data categories that earn points.
	SchemaBonuses []SchemaBonus

	definition *regexp.Regexp
	example    *regexp.Regexp
}

// SchemaBonus awards Points once per JSON-LD object whose @type is any of
// Types.
type SchemaBonus struct {
	Types  []string
	Points float64
}

// DefaultPatterns returns the standard English phrase lists.
func DefaultPatterns() *Patterns {
	return NewPatterns(
		[]string{"is", "are", "means", "refers to", "defined as"},
		[]string{"a", "an", "the"},
		[]string{"for example", "for instance", "such as", "like", "e.g."},
		[]SchemaBonus{
			{Types: []string{"FAQPage", "Question"}, Points: 5},
			{Types: []string{"Article", "BlogPosting"}, Points: 5},
			{Types: []string{"HowTo"}, Points: 5},
		},
	)
}

// NewPatterns compiles the given lists into matchers.
func NewPatterns(verbs, articles, examples []string, bonuses []SchemaBonus) *Patterns {
	return &Patterns{
		DefinitionVerbs: verbs,
		Articles:        articles,
		ExamplePhrases:  examples,
		SchemaBonuses:   bonuses,
		definition: regexp.MustCompile(`(?i)\b(?:` + alternation(verbs) + `)\s+(?:` +
			alternation(articles) + `)\s+\w+`),
		example: regexp.MustCompile(`(?i)\b(?:` + alternation(examples) + `)`),
	}
}

// alternation quotes each phrase, lets internal spaces match any whitespace
// and closes phrases ending in a letter with a word boundary.
func alternation(phrases []string) string {
	parts := make([]string, 0, len(phrases))
	for _, p := range phrases {
		q := strings.ReplaceAll(regexp.QuoteMeta(p), " ", `\s+`)
		if r := []rune(p); len(r) > 0 && unicode.IsLetter(r[len(r)-1]) {
			q += `\b`
		}
		parts = append(parts, q)
	}
	return strings.Join(parts, "|")
}

// schemaBonus sums the categories matched by one object's types.
func (p *Patterns) schemaBonus(types []string) float64 {
	total := 0.0
	for _, b := range p.SchemaBonuses {
		if slices.ContainsFunc(types, func(t string) bool { return slices.Contains(b.Types, t) }) {
			total += b.Points
		}
	}
	return total
}

func (p *Patterns) countDefinitions(text string) int {
	return len(p.definition.FindAllStringIndex(text, -1))
}

func (p *Patterns) countExamples(text string) int {
	return len(p.example.FindAllStringIndex(text, -1))
}
