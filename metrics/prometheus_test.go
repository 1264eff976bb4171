package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	c := NewPrometheusCollector("test")
	reg := prometheus.NewRegistry()

	require.NoError(t, c.Register(reg))
	assert.Error(t, c.Register(reg), "registering twice must fail")
}

func TestRecordRequest(t *testing.T) {
	c := NewPrometheusCollector("test")

	c.RecordRequest("POST", "/api/analyze", 200, 120*time.Millisecond)
	c.RecordRequest("POST", "/api/analyze", 201, 80*time.Millisecond)
	c.RecordRequest("POST", "/api/analyze", 500, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("POST", "/api/analyze", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues("POST", "/api/analyze", "5xx")))
}

func TestInFlight(t *testing.T) {
	c := NewPrometheusCollector("test")

	c.IncRequestsInFlight()
	c.IncRequestsInFlight()
	c.DecRequestsInFlight()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsInFlight))
}

func TestAnalysisMetrics(t *testing.T) {
	c := NewPrometheusCollector("test")

	c.RecordAnalysis(true, time.Second)
	c.RecordAnalysis(false, 2*time.Second)
	c.RecordAnalysis(false, time.Second)
	c.RecordFetchFailure("timeout")
	c.RecordFetchFailure("dns")
	c.RecordFetchFailure("timeout")
	c.RecordScores(80, 55)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.analysisTotal.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.analysisTotal.WithLabelValues("failure")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.fetchFailures.WithLabelValues("timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fetchFailures.WithLabelValues("dns")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.scores))
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{
		200: "2xx",
		302: "3xx",
		400: "4xx",
		503: "5xx",
		0:   "unknown",
	}
	for code, want := range tests {
		assert.Equal(t, want, statusClass(code), "code %d", code)
	}
}
