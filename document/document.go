// Package document wraps HTML in a queryable tree. Selectors are CSS
// selectors as understood by goquery.
package document

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Document is the read-only query surface the scorers depend on.
type Document interface {
	// Count returns the number of elements matching sel.
	Count(sel string) int
	// Texts returns the normalized text of every element matching sel.
	Texts(sel string) []string
	// FirstText returns the normalized text of the first match, or "".
	FirstText(sel string) string
	// Attr returns attribute name of the first match, or "".
	Attr(sel, name string) string
	// InnerHTML returns the raw inner HTML of every element matching sel.
	InnerHTML(sel string) []string
	// BodyText returns the normalized visible text of <body>.
	BodyText() string
	// Raw returns the source HTML.
	Raw() string
}

// nonVisible elements are dropped from body text.
const nonVisible = "script, style, noscript, template"

// rawText elements hold their content unescaped in the source.
var rawText = map[string]bool{
	"script":    true,
	"style":     true,
	"xmp":       true,
	"iframe":    true,
	"noembed":   true,
	"noframes":  true,
	"plaintext": true,
}

// HTMLDocument implements Document over a goquery tree.
type HTMLDocument struct {
	doc      *goquery.Document
	raw      string
	bodyText string
}

// Parse builds a document from HTML. Malformed markup is recovered the way
// browsers do; an error is only returned when the input cannot be read.
func Parse(html string) (*HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	body := doc.Find("body").Clone()
	body.Find(nonVisible).Remove()

	return &HTMLDocument{
		doc:      doc,
		raw:      html,
		bodyText: Normalize(body.Text()),
	}, nil
}

func (d *HTMLDocument) Count(sel string) int {
	return d.doc.Find(sel).Length()
}

func (d *HTMLDocument) Texts(sel string) []string {
	sels := d.doc.Find(sel)
	texts := make([]string, 0, sels.Length())
	sels.Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, Normalize(s.Text()))
	})
	return texts
}

func (d *HTMLDocument) FirstText(sel string) string {
	return Normalize(d.doc.Find(sel).First().Text())
}

func (d *HTMLDocument) Attr(sel, name string) string {
	v, _ := d.doc.Find(sel).First().Attr(name)
	return v
}

func (d *HTMLDocument) InnerHTML(sel string) []string {
	sels := d.doc.Find(sel)
	out := make([]string, 0, sels.Length())
	sels.Each(func(_ int, s *goquery.Selection) {
		h, err := innerHTML(s)
		if err != nil {
			return
		}
		out = append(out, h)
	})
	return out
}

// innerHTML renders the children of the first node in s. goquery renders
// text children one by one and so escapes them even inside raw text
// elements, where the source text is returned verbatim instead.
func innerHTML(s *goquery.Selection) (string, error) {
	if len(s.Nodes) > 0 && rawText[s.Nodes[0].Data] {
		return s.Text(), nil
	}
	return s.Html()
}

func (d *HTMLDocument) BodyText() string { return d.bodyText }

func (d *HTMLDocument) Raw() string { return d.raw }

// Normalize collapses every whitespace run to one space and trims.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// MainContent describes the primary article block of a page.
type MainContent struct {
	Title  string `json:"title"`
	Length int    `json:"length"`
}

// ExtractMainContent runs a readability extractor over the page. Pages the
// extractor cannot handle yield a zero value.
func ExtractMainContent(html, pageURL string) MainContent {
	if strings.TrimSpace(html) == "" {
		return MainContent{}
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return MainContent{}
	}
	article, err := readability.FromReader(strings.NewReader(html), u)
	if err != nil {
		return MainContent{}
	}
	return MainContent{
		Title:  Normalize(article.Title),
		Length: len([]rune(Normalize(article.TextContent))),
	}
}

var _ Document = (*HTMLDocument)(nil)
