// Package analyzer scores a single web page for traditional SEO and for
// generative-engine readability (GEO).
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seo-optimizer/geochecker/document"
	"github.com/seo-optimizer/geochecker/fetcher"
	"github.com/seo-optimizer/geochecker/logging"
	"github.com/seo-optimizer/geochecker/nlp"
)

// Fetcher retrieves page HTML.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Page, error)
}

// Recorder receives analysis outcomes for metrics.
type Recorder interface {
	RecordAnalysis(success bool, duration time.Duration)
	RecordFetchFailure(kind string)
	RecordScores(seo, geo int)
}

type nopRecorder struct{}

func (nopRecorder) RecordAnalysis(bool, time.Duration) {}
func (nopRecorder) RecordFetchFailure(string)          {}
func (nopRecorder) RecordScores(int, int)              {}

type multiRecorder []Recorder

// MultiRecorder fans every record out to rs in order.
func MultiRecorder(rs ...Recorder) Recorder {
	return multiRecorder(rs)
}

func (m multiRecorder) RecordAnalysis(success bool, d time.Duration) {
	for _, r := range m {
		r.RecordAnalysis(success, d)
	}
}

func (m multiRecorder) RecordFetchFailure(kind string) {
	for _, r := range m {
		r.RecordFetchFailure(kind)
	}
}

func (m multiRecorder) RecordScores(seo, geo int) {
	for _, r := range m {
		r.RecordScores(seo, geo)
	}
}

// Analyzer runs the fetch, parse, extract, score and compose pipeline. It
// keeps no per-request state and is safe for concurrent use.
type Analyzer struct {
	fetcher  Fetcher
	toolkit  nlp.Toolkit
	patterns *Patterns
	logger   logging.Logger
	recorder Recorder
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithPatterns replaces the phrase lists used by the pattern rules.
func WithPatterns(p *Patterns) Option {
	return func(a *Analyzer) { a.patterns = p }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(a *Analyzer) { a.recorder = r }
}

// New creates an Analyzer.
func New(f Fetcher, toolkit nlp.Toolkit, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher:  f,
		toolkit:  toolkit,
		patterns: DefaultPatterns(),
		logger:   logging.NewNop(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze fetches url and scores the returned page.
func (a *Analyzer) Analyze(ctx context.Context, url string) (*Result, error) {
	start := time.Now()
	log := a.logger.With(logging.String("url", url))

	page, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		var fe *fetcher.FetchError
		if errors.As(err, &fe) {
			a.recorder.RecordFetchFailure(string(fe.Kind))
			log.Warn("Fetch failed", logging.String("kind", string(fe.Kind)), logging.Error(fe.Err))
		}
		a.recorder.RecordAnalysis(false, time.Since(start))
		return nil, err
	}

	result, err := a.AnalyzeHTML(page.URL, page.HTML)
	if err != nil {
		log.Error("Analysis failed", logging.Error(err))
		a.recorder.RecordAnalysis(false, time.Since(start))
		return nil, err
	}

	a.recorder.RecordAnalysis(true, time.Since(start))
	a.recorder.RecordScores(result.Score, result.GeoScore)
	log.Info("Analysis completed",
		logging.Int("status_code", page.StatusCode),
		logging.Int("score", result.Score),
		logging.Int("geo_score", result.GeoScore),
		logging.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// AnalyzeHTML scores already fetched HTML. The same input always yields
// the same result.
func (a *Analyzer) AnalyzeHTML(pageURL, html string) (*Result, error) {
	doc, err := document.Parse(html)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	seo := scoreSEO(extractSEO(doc))
	geo := a.scoreGEO(doc, pageURL)

	result := Compose(seo, geo)
	result.Priorities = Prioritize(result.Issues, result.GeoIssues)
	return &result, nil
}
