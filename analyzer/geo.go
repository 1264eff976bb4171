package analyzer

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/seo-optimizer/geochecker/document"
	"github.com/seo-optimizer/geochecker/logging"
	"github.com/seo-optimizer/geochecker/nlp"
)

// Nominal section maxima.
const (
	headingMax        = 10.0
	paragraphMax      = 10.0
	structuredMax     = 5.0
	contentRatioMax   = 5.0
	languageMax       = 35.0
	readabilityMax    = 15.0
	entityMax         = 10.0
	questionMax       = 5.0
	keywordMax        = 5.0
	structuredDataMax = 25.0
	definitionMax     = 3.0
	exampleMax        = 2.0
	topicMax          = 5.0
)

const (
	paragraphMinWords      = 40
	paragraphMaxWords      = 150
	minLanguageChars       = 100
	headingH2Chars         = 500
	examplesChars          = 800
	longContentChars       = 1000
	goodContentRatio       = 0.25
	readabilityFailPenalty = 10.0
	shortTopicWords        = 5
)

var sentenceEnd = regexp.MustCompile(`[.!?]`)

// geoRun accumulates one GEO evaluation.
type geoRun struct {
	a         *Analyzer
	doc       document.Document
	text      string
	textLen   int
	words     int
	paras     []string
	deduction float64
	report    GeoReport
}

func (r *geoRun) flag(issue Issue, rec string) {
	r.report.Issues = append(r.report.Issues, issue)
	if rec != "" {
		r.report.Recommendations = append(r.report.Recommendations, rec)
	}
}

// section runs one rule and deducts nominal minus earned. A panicking rule
// forfeits its whole nominal value without aborting the analysis.
func (r *geoRun) section(name string, nominal float64, rule func() float64) {
	earned := 0.0
	func() {
		defer func() {
			if p := recover(); p != nil {
				r.a.logger.Warn("GEO rule failed",
					logging.String("rule", name),
					logging.Any("panic", p),
				)
				earned = 0
			}
		}()
		earned = rule()
	}()
	r.deduction += nominal - earned
}

func (a *Analyzer) scoreGEO(doc document.Document, pageURL string) GeoReport {
	text := doc.BodyText()
	r := &geoRun{
		a:       a,
		doc:     doc,
		text:    text,
		textLen: utf8.RuneCountInString(text),
		words:   len(strings.Fields(text)),
		report: GeoReport{
			Issues:          []Issue{},
			Recommendations: []string{},
		},
	}
	for _, p := range doc.Texts("p") {
		if p != "" {
			r.paras = append(r.paras, p)
		}
	}

	// A. Structure
	r.section("heading_hierarchy", headingMax, r.headingHierarchy)
	r.section("paragraph_quality", paragraphMax, r.paragraphQuality)
	r.section("structured_content", structuredMax, r.structuredContent)
	r.section("content_ratio", contentRatioMax, r.contentRatio)

	// B. Natural language
	if r.textLen > minLanguageChars {
		r.section("readability", readabilityMax, r.readability)
		r.section("entities", entityMax, r.entityRichness)
		r.section("questions", questionMax, r.questionPatterns)
		r.section("keyword_density", keywordMax, r.keywordDensity)
	} else {
		r.deduction += languageMax
		r.flag(Issue{"Insufficient content", "The page has too little text for AI systems to understand or cite.", High, High},
			"Add substantial, informative text content to the page")
	}

	// C. Structured data
	r.section("structured_data", structuredDataMax, r.structuredData)

	// D. AI-friendly signals
	r.section("definitions", definitionMax, r.definitions)
	r.section("examples", exampleMax, r.examples)
	r.section("topic_sentences", topicMax, r.topicSentences)

	mc := document.ExtractMainContent(doc.Raw(), pageURL)
	r.report.Metrics.MainContent = MainContent{Title: mc.Title, Length: mc.Length}
	if r.textLen > 0 {
		r.report.Metrics.MainContent.Share = round2(float64(mc.Length) / float64(r.textLen))
	}

	r.report.Score = clampScore(100 - r.deduction)
	return r.report
}

func (r *geoRun) headingHierarchy() float64 {
	h1, h2 := r.doc.Count("h1"), r.doc.Count("h2")
	earned := headingMax
	switch {
	case h1 == 0:
		earned -= 10
		r.flag(Issue{"Missing H1 heading", "AI systems use the H1 to identify the main topic of a page.", High, Low},
			"Add a single H1 heading that states the page topic")
	case h1 > 1:
		earned -= 5
		r.flag(Issue{"Multiple H1 headings", fmt.Sprintf("Found %d H1 headings; the main topic is ambiguous.", h1), Medium, Low},
			"Keep one H1 and demote the others to H2")
	}
	if h2 == 0 && r.textLen > headingH2Chars {
		earned -= 3
		r.flag(Issue{"No H2 subheadings", "Long content without subheadings is harder for AI systems to segment.", Medium, Low},
			"Break content into sections with descriptive H2 headings")
	}
	earned = math.Max(0, earned)
	r.report.Metrics.HeadingHierarchyScore = earned
	return earned
}

func (r *geoRun) paragraphQuality() float64 {
	optimal := 0
	for _, p := range r.paras {
		if n := len(strings.Fields(p)); n >= paragraphMinWords && n <= paragraphMaxWords {
			optimal++
		}
	}
	earned := 0.0
	if len(r.paras) > 0 {
		earned = math.Min(paragraphMax, paragraphMax*float64(optimal)/float64(len(r.paras)))
	}
	m := &r.report.Metrics
	m.TotalParagraphs = len(r.paras)
	m.OptimalParagraphs = optimal
	m.ParagraphScore = round2(earned)
	if earned < 5 {
		r.flag(Issue{"Paragraph length not optimized",
			fmt.Sprintf("%d of %d paragraphs are in the %d-%d word range.", optimal, len(r.paras), paragraphMinWords, paragraphMaxWords),
			Medium, Medium},
			"Write paragraphs of 40-150 words that each cover one idea")
	}
	return earned
}

func (r *geoRun) structuredContent() float64 {
	lists := r.doc.Count("ul") + r.doc.Count("ol")
	tables := r.doc.Count("table")
	earned := 0.0
	if lists > 0 {
		earned += 3
	}
	if tables > 0 {
		earned += 2
	}
	earned = math.Min(structuredMax, earned)
	m := &r.report.Metrics
	m.Lists, m.Tables, m.StructuredContentScore = lists, tables, earned
	if lists == 0 && r.textLen > longContentChars {
		r.flag(Issue{"No lists found", "Lists make steps and key points easy for AI systems to extract.", Medium, Low},
			"Use bulleted or numbered lists for steps, features and key points")
	}
	return earned
}

func (r *geoRun) contentRatio() float64 {
	ratio := 0.0
	if n := utf8.RuneCountInString(r.doc.Raw()); n > 0 {
		ratio = float64(r.textLen) / float64(n)
	}
	earned := contentRatioMax
	if ratio <= goodContentRatio {
		earned = math.Max(0, ratio*20)
	}
	m := &r.report.Metrics
	m.ContentToCodeRatio = formatFloat(ratio, 2)
	m.ContentToCodeScore = round2(earned)
	if ratio < goodContentRatio {
		r.flag(Issue{"Low content-to-code ratio", fmt.Sprintf("Visible text is %.0f%% of the page source.", ratio*100), Low, High},
			"Increase visible text content or reduce markup and inline code")
	}
	return earned
}

// readabilityOf converts a toolkit panic into an error so it takes the
// fixed failure penalty.
func (r *geoRun) readabilityOf(text string) (res nlp.Readability, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("readability: %v", p)
		}
	}()
	return r.a.toolkit.Readability(text)
}

func (r *geoRun) readability() float64 {
	res, err := r.readabilityOf(r.text)
	if err != nil {
		r.a.logger.Debug("Readability unavailable", logging.Error(err))
		return readabilityMax - readabilityFailPenalty
	}
	m := &r.report.Metrics
	m.ReadabilityScore = formatFloat(res.Score, 1)
	m.GradeLevel = formatFloat(res.Grade, 1)

	switch {
	case res.Score >= 60 && res.Score <= 80:
		return 15
	case res.Score >= 50 && res.Score < 60:
		r.flag(Issue{"Content slightly difficult to read", fmt.Sprintf("Flesch Reading Ease is %.1f; 60-80 is ideal.", res.Score), Medium, Medium},
			"Shorten sentences and prefer simpler words")
		return 12
	case res.Score > 80:
		r.flag(Issue{"Content may be too simple", fmt.Sprintf("Flesch Reading Ease is %.1f; very simple text can lack depth.", res.Score), Low, Low}, "")
		return 12
	default:
		r.flag(Issue{"Content is difficult to read", fmt.Sprintf("Flesch Reading Ease is %.1f (grade %.1f).", res.Score, res.Grade), High, Medium},
			"Simplify sentence structure and vocabulary to reach a Flesch score of 60-80")
		return 8
	}
}

func (r *geoRun) entityRichness() float64 {
	e := r.a.toolkit.Entities(r.text)
	density := 0.0
	if r.words > 0 {
		density = float64(e.Total) / float64(r.words) * 500
	}
	m := &r.report.Metrics
	m.Entities = &e
	m.EntityDensity = formatFloat(density, 2)
	if density < 5 {
		r.flag(Issue{"Low entity richness", fmt.Sprintf("%.1f named entities per 500 words.", density), Medium, Medium},
			"Mention specific people, places and organizations to give AI systems concrete context")
	}
	return math.Min(entityMax, density*2)
}

func (r *geoRun) questionPatterns() float64 {
	n := r.a.toolkit.Questions(r.text)
	r.report.Metrics.Questions = n
	if n > 0 {
		return questionMax
	}
	if r.textLen > longContentChars {
		r.flag(Issue{"No question patterns", "Question-style sentences map directly onto the queries users ask AI assistants.", Medium, Low},
			"Add questions your readers ask, followed by direct answers")
	}
	return 0
}

func (r *geoRun) keywordDensity() float64 {
	terms := r.a.toolkit.Terms(r.text)
	unique := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		unique[t] = struct{}{}
	}
	density := 0.0
	if len(terms) > 0 {
		density = float64(len(terms)-len(unique)) / float64(len(terms)) * 100
	}
	r.report.Metrics.KeywordDensity = formatFloat(density, 2)

	switch {
	case density > 3:
		r.flag(Issue{"Possible keyword over-optimization", fmt.Sprintf("%.1f%% of terms are repeats.", density), Medium, Low},
			"Vary your wording and use synonyms instead of repeating the same terms")
		return 2
	case density < 1:
		r.flag(Issue{"Low keyword repetition", "Key terms are barely repeated, so the page topic may be unclear.", Low, Low}, "")
		return 3
	default:
		return keywordMax
	}
}

func (r *geoRun) structuredData() float64 {
	sd, earned := r.a.scoreStructuredData(r.doc.InnerHTML(`script[type="application/ld+json"]`))
	r.report.Metrics.StructuredData = sd
	if !sd.HasJSONLD {
		r.flag(Issue{"No structured data", "JSON-LD schema markup tells AI systems what the page is about.", High, Medium},
			"Add JSON-LD structured data (Article, FAQPage or HowTo schema)")
	}
	return earned
}

func (r *geoRun) definitions() float64 {
	n := r.a.patterns.countDefinitions(r.text)
	r.report.Metrics.Definitions = n
	if n == 0 {
		r.flag(Issue{"No clear definitions", `Definitional sentences such as "X is a ..." are readily quoted by answer engines.`, Medium, Low},
			`Define key terms explicitly, for example "X is a ..."`)
	}
	return math.Min(definitionMax, float64(n)*0.5)
}

func (r *geoRun) examples() float64 {
	n := r.a.patterns.countExamples(r.text)
	r.report.Metrics.Examples = n
	if n == 0 && r.textLen > examplesChars {
		r.flag(Issue{"No examples", "Concrete examples help AI systems illustrate answers drawn from the page.", Low, Low},
			"Illustrate key points with concrete examples")
	}
	return math.Min(exampleMax, float64(n)*0.5)
}

func (r *geoRun) topicSentences() float64 {
	if len(r.paras) <= 3 {
		r.report.Metrics.TopicSentenceScore = topicMax
		return topicMax
	}
	short := 0
	for _, p := range r.paras {
		first := sentenceEnd.Split(p, 2)[0]
		if len(strings.Fields(first)) < shortTopicWords {
			short++
		}
	}
	earned := topicMax
	if float64(short)/float64(len(r.paras)) > 0.5 {
		earned = 2
		r.flag(Issue{"Weak topic sentences", fmt.Sprintf("%d of %d paragraphs open with a sentence under %d words.", short, len(r.paras), shortTopicWords), Medium, Medium},
			"Open each paragraph with a full sentence that states its main point")
	}
	r.report.Metrics.TopicSentenceScore = earned
	return earned
}

func clampScore(v float64) int {
	return int(math.Max(0, math.Min(100, math.Round(v))))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
