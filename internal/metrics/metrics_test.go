package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSearch(t *testing.T) {
	m := New()
	m.ObserveSearch("healthy", ResultHit, 3*time.Millisecond)
	m.ObserveSearch("healthy", ResultHit, time.Millisecond)
	m.ObserveSearch("normal", ResultEmpty, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("healthy", ResultHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("normal", ResultEmpty)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.SearchLatency))
}

func TestObserveCacheLookupAndIndex(t *testing.T) {
	m := New()
	m.ObserveCacheLookup(true)
	m.ObserveCacheLookup(false)
	m.ObserveCacheLookup(false)
	m.ObserveIndex("cache", 6, 0)
	m.ObserveIndex("built", 7, 20*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMissesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IndexBuildsTotal.WithLabelValues("cache")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IndexBuildsTotal.WithLabelValues("built")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.IndexDocuments))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSearch("normal", ResultHit, time.Millisecond)
		m.ObserveCacheLookup(true)
		m.ObserveIndex("built", 1, time.Millisecond)
		m.ObserveHTTP("GET", "/health", "200", time.Millisecond)
	})
}

func TestHandlerServesPrivateRegistry(t *testing.T) {
	m := New()
	m.ObserveHTTP("POST", "/search", "200", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="POST",path="/search",status="200"} 1`)
	assert.NotContains(t, string(body), "go_goroutines", "default process collectors are not registered")
}
