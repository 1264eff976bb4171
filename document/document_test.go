package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<!DOCTYPE html>
<html>
<head>
  <title>
    Sample   Page
  </title>
  <meta name="description" content="A short description">
  <meta property="og:title" content="OG Title">
  <script type="application/ld+json">{"@type": "Article"}</script>
</head>
<body>
  <h1>Heading</h1>
  <p>First   paragraph
     spans lines.</p>
  <p>Second paragraph.</p>
  <img src="a.png" alt="a">
  <img src="b.png">
  <img src="c.png" alt="">
  <script>var hidden = "not visible";</script>
  <style>.x { color: red }</style>
</body>
</html>`

func TestParseAndQuery(t *testing.T) {
	doc, err := Parse(sample)
	require.NoError(t, err)

	assert.Equal(t, "Sample Page", doc.FirstText("title"))
	assert.Equal(t, "A short description", doc.Attr(`meta[name="description"]`, "content"))
	assert.Equal(t, "OG Title", doc.Attr(`meta[property="og:title"]`, "content"))
	assert.Equal(t, "", doc.Attr(`meta[property="og:description"]`, "content"))

	assert.Equal(t, 1, doc.Count("h1"))
	assert.Equal(t, 0, doc.Count("h2"))
	assert.Equal(t, 3, doc.Count("img"))
	assert.Equal(t, 1, doc.Count("img:not([alt])"))

	assert.Equal(t, []string{"First paragraph spans lines.", "Second paragraph."}, doc.Texts("p"))
	assert.Equal(t, []string{`{"@type": "Article"}`}, doc.InnerHTML(`script[type="application/ld+json"]`))
	assert.Equal(t, sample, doc.Raw())
}

func TestInnerHTMLKeepsRawTextVerbatim(t *testing.T) {
	doc, err := Parse(`<html><head>
<script type="application/ld+json">{"@type":"FAQPage","name":"Q & A <intro>"}</script>
<style>a > b { content: "x" }</style>
</head><body><div><b>bold</b> &amp; "quoted"</div></body></html>`)
	require.NoError(t, err)

	assert.Equal(t, []string{`{"@type":"FAQPage","name":"Q & A <intro>"}`}, doc.InnerHTML("script"))
	assert.Equal(t, []string{`a > b { content: "x" }`}, doc.InnerHTML("style"))
	assert.Equal(t, []string{`<b>bold</b> &amp; &#34;quoted&#34;`}, doc.InnerHTML("div"))
	assert.Empty(t, doc.InnerHTML("table"))
}

func TestBodyTextExcludesScriptsWithoutMutating(t *testing.T) {
	doc, err := Parse(sample)
	require.NoError(t, err)

	body := doc.BodyText()
	assert.Equal(t, "Heading First paragraph spans lines. Second paragraph.", body)
	assert.NotContains(t, body, "hidden")
	assert.NotContains(t, body, "color")

	// The tree still has the scripts the clone dropped.
	assert.Equal(t, 2, doc.Count("script"))
}

func TestParseMalformedHTML(t *testing.T) {
	doc, err := Parse(`<html><body><p>unclosed <b>bold<div>block</p><h1>title`)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Count("h1"))
	assert.True(t, strings.Contains(doc.BodyText(), "unclosed bold"))
}

func TestParseEmpty(t *testing.T) {
	doc, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, "", doc.BodyText())
	assert.Equal(t, "", doc.FirstText("title"))
	assert.Empty(t, doc.Texts("p"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b c", Normalize("  a\n\t b   c \r\n"))
	assert.Equal(t, "", Normalize(" \n "))
}

func TestExtractMainContent(t *testing.T) {
	assert.Equal(t, MainContent{}, ExtractMainContent("", "https://example.com"))
	assert.Equal(t, MainContent{}, ExtractMainContent("<p>x</p>", "://bad"))

	para := strings.Repeat("Readable article text that carries the main content of the page. ", 20)
	html := `<html><head><title>Story</title></head><body><nav>menu</nav><article><h1>Story</h1><p>` +
		para + `</p><p>` + para + `</p></article></body></html>`
	mc := ExtractMainContent(html, "https://example.com/story")
	assert.Greater(t, mc.Length, 0)
}
