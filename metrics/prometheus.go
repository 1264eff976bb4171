// Package metrics exposes Prometheus collectors for the HTTP API and the
// analysis pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "geochecker"

// PrometheusCollector records request and analysis metrics.
type PrometheusCollector struct {
	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Analysis metrics
	analysisTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	fetchFailures    *prometheus.CounterVec
	scores           *prometheus.HistogramVec
}

// NewPrometheusCollector creates the collectors. Call Register before use
// with a registry that is scraped.
func NewPrometheusCollector(serviceName string) *PrometheusCollector {
	labels := prometheus.Labels{"service": serviceName}

	return &PrometheusCollector{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: labels,
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request duration in seconds",
				ConstLabels: labels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   namespace,
				Name:        "http_requests_in_flight",
				Help:        "Number of HTTP requests currently being processed",
				ConstLabels: labels,
			},
		),

		analysisTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "analysis_total",
				Help:        "Total number of page analyses",
				ConstLabels: labels,
			},
			[]string{"status"},
		),

		analysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Name:        "analysis_duration_seconds",
				Help:        "Page analysis duration in seconds, fetch included",
				ConstLabels: labels,
				Buckets:     []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"status"},
		),

		fetchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "fetch_failures_total",
				Help:        "Page fetch failures by kind",
				ConstLabels: labels,
			},
			[]string{"kind"},
		),

		scores: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Name:        "score",
				Help:        "Distribution of SEO and GEO scores",
				ConstLabels: labels,
				Buckets:     prometheus.LinearBuckets(10, 10, 10),
			},
			[]string{"kind"},
		),
	}
}

// Collectors returns all collectors for registration.
func (p *PrometheusCollector) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.httpRequestsTotal,
		p.httpRequestDuration,
		p.httpRequestsInFlight,
		p.analysisTotal,
		p.analysisDuration,
		p.fetchFailures,
		p.scores,
	}
}

// Register adds every collector to reg.
func (p *PrometheusCollector) Register(reg prometheus.Registerer) error {
	for _, c := range p.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest records HTTP request metrics.
func (p *PrometheusCollector) RecordRequest(method, path string, statusCode int, duration time.Duration) {
	status := statusClass(statusCode)
	p.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	p.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncRequestsInFlight increments the in-flight requests gauge.
func (p *PrometheusCollector) IncRequestsInFlight() { p.httpRequestsInFlight.Inc() }

// DecRequestsInFlight decrements the in-flight requests gauge.
func (p *PrometheusCollector) DecRequestsInFlight() { p.httpRequestsInFlight.Dec() }

// RecordAnalysis records one finished analysis.
func (p *PrometheusCollector) RecordAnalysis(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	p.analysisTotal.WithLabelValues(status).Inc()
	p.analysisDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordFetchFailure counts a failed fetch by its kind.
func (p *PrometheusCollector) RecordFetchFailure(kind string) {
	p.fetchFailures.WithLabelValues(kind).Inc()
}

// RecordScores observes both scores of a successful analysis.
func (p *PrometheusCollector) RecordScores(seo, geo int) {
	p.scores.WithLabelValues("seo").Observe(float64(seo))
	p.scores.WithLabelValues("geo").Observe(float64(geo))
}

func statusClass(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
