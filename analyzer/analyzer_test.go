package analyzer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/geochecker/fetcher"
	"github.com/seo-optimizer/geochecker/logging"
	"github.com/seo-optimizer/geochecker/nlp"
)

const goodPage = `<!DOCTYPE html>
<html lang="en"><head>
<title>Complete Guide to Go Concurrency Patterns</title>
<meta name="description" content="Learn how Go channels work, when to use buffered and unbuffered channels, and how to avoid the most common deadlocks in concurrent programs.">
<meta property="og:title" content="Go Concurrency Patterns">
<meta property="og:description" content="Channels and goroutines explained with examples.">
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Article","headline":"Go Concurrency"}</script>
</head>
<body>
<article>
<h1>Go Concurrency Patterns</h1>
<h2>What is a goroutine?</h2>
<p>A goroutine is a lightweight thread managed by the Go runtime. Google designed the language so that thousands of goroutines can run in a single process, and the scheduler multiplexes them onto a small number of operating system threads. Rob Pike often describes this model as concurrency rather than parallelism.</p>
<h2>How do channels work?</h2>
<p>Channels are the pipes that connect goroutines. For example, a producer can send values on a channel while a consumer in another goroutine receives them in the same order. Teams in London and Berlin use this pattern to build reliable pipelines that process millions of events every day.</p>
<ul><li>Unbuffered channels synchronize sender and receiver.</li><li>Buffered channels decouple them up to a capacity.</li></ul>
<img src="diagram.png" alt="Channel diagram">
</article>
</body></html>`

type recorded struct {
	mu        sync.Mutex
	successes int
	failures  int
	kinds     []string
	scores    [][2]int
}

func (r *recorded) RecordAnalysis(success bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if success {
		r.successes++
	} else {
		r.failures++
	}
}

func (r *recorded) RecordFetchFailure(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
}

func (r *recorded) RecordScores(seo, geo int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores = append(r.scores, [2]int{seo, geo})
}

type fakeFetcher struct {
	page *fetcher.Page
	err  error
}

func (f fakeFetcher) Fetch(context.Context, string) (*fetcher.Page, error) {
	return f.page, f.err
}

func newHTTPFetcher() *fetcher.Fetcher {
	return fetcher.New(fetcher.Options{
		Timeout:      5 * time.Second,
		MaxBodyBytes: 1 << 20,
		UserAgent:    "geochecker-test",
	}, logging.NewNop())
}

func TestAnalyzeEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(goodPage))
	}))
	defer server.Close()

	rec := &recorded{}
	a := New(newHTTPFetcher(), nlp.New(), WithRecorder(rec), WithLogger(logging.NewNop()))

	result, err := a.Analyze(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, 100, result.Score)
	assert.Empty(t, result.Issues)
	assert.Equal(t, "Complete Guide to Go Concurrency Patterns", result.Title)
	assert.Equal(t, 41, result.TitleLength)
	assert.Equal(t, 1, result.TotalImages)

	assert.GreaterOrEqual(t, result.GeoScore, 0)
	assert.LessOrEqual(t, result.GeoScore, 100)
	assert.True(t, result.GeoMetrics.StructuredData.HasJSONLD)
	assert.Equal(t, []string{"Article"}, result.GeoMetrics.StructuredData.Schemas)
	assert.Positive(t, result.GeoMetrics.Questions)
	assert.NotEmpty(t, result.GeoMetrics.ReadabilityScore)
	require.NotNil(t, result.GeoMetrics.Entities)
	assert.NotNil(t, result.Priorities)

	assert.Equal(t, 1, rec.successes)
	assert.Equal(t, [][2]int{{result.Score, result.GeoScore}}, rec.scores)
}

func TestAnalyzeRejectsSchemelessURL(t *testing.T) {
	rec := &recorded{}
	a := New(newHTTPFetcher(), newStubToolkit(), WithRecorder(rec))

	result, err := a.Analyze(context.Background(), "example.com")

	assert.Nil(t, result)
	var fe *fetcher.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fetcher.KindInvalidURL, fe.Kind)
	assert.Equal(t, []string{"invalid_url"}, rec.kinds)
	assert.Equal(t, 1, rec.failures)
}

func TestAnalyzeNonHTMLErrorPageStillScored(t *testing.T) {
	page := &fetcher.Page{URL: "https://example.com/missing", HTML: "<html><body><h1>Not found</h1></body></html>", StatusCode: 404}
	result, err := New(fakeFetcher{page: page}, newStubToolkit()).Analyze(context.Background(), page.URL)

	require.NoError(t, err)
	assert.Equal(t, 1, result.H1Count)
}

func TestAnalyzePropagatesPlainErrors(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorded{}
	_, err := New(fakeFetcher{err: boom}, newStubToolkit(), WithRecorder(rec)).Analyze(context.Background(), "https://example.com")

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, rec.kinds)
	assert.Equal(t, 1, rec.failures)
}

func TestAnalyzeHTMLIsDeterministic(t *testing.T) {
	a := New(nil, nlp.New())

	first, err := a.AnalyzeHTML("https://example.com", goodPage)
	require.NoError(t, err)
	second, err := a.AnalyzeHTML("https://example.com", goodPage)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeHTMLConcurrent(t *testing.T) {
	a := New(nil, nlp.New())
	want, err := a.AnalyzeHTML("https://example.com", goodPage)
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	results := make([]*Result, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = a.AnalyzeHTML("https://example.com", goodPage)
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestComposeDoesNotAlias(t *testing.T) {
	seo := SEOReport{
		Score:           90,
		Issues:          []Issue{{Title: "Title is too short", Impact: Medium, Effort: Low}},
		Recommendations: []string{"Expand your title"},
	}
	geo := GeoReport{
		Score:           70,
		Issues:          []Issue{{Title: "No structured data", Impact: High, Effort: Medium}},
		Recommendations: []string{"Add JSON-LD"},
		Metrics: GeoMetrics{
			Entities:       &nlp.Entities{Total: 4},
			StructuredData: StructuredData{Schemas: []string{"Article"}},
		},
	}

	result := Compose(seo, geo)
	result.Issues[0].Title = "changed"
	result.GeoRecommendations[0] = "changed"
	result.GeoMetrics.Entities.Total = 0
	result.GeoMetrics.StructuredData.Schemas[0] = "changed"

	assert.Equal(t, "Title is too short", seo.Issues[0].Title)
	assert.Equal(t, "Add JSON-LD", geo.Recommendations[0])
	assert.Equal(t, 4, geo.Metrics.Entities.Total)
	assert.Equal(t, "Article", geo.Metrics.StructuredData.Schemas[0])
	assert.Equal(t, 90, result.Score)
	assert.Equal(t, 70, result.GeoScore)
}

func TestMultiRecorder(t *testing.T) {
	a, b := &recorded{}, &recorded{}
	r := MultiRecorder(a, b)

	r.RecordAnalysis(true, time.Second)
	r.RecordFetchFailure("dns")
	r.RecordScores(10, 20)

	for _, rec := range []*recorded{a, b} {
		assert.Equal(t, 1, rec.successes)
		assert.Equal(t, []string{"dns"}, rec.kinds)
		assert.Equal(t, [][2]int{{10, 20}}, rec.scores)
	}
}
