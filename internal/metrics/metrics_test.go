package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.BuildFinished(nil)
	m.BuildFinished(errors.New("boom"))
	m.BuildFinished(nil)
	m.CacheHit()
	m.RateLimited()
	m.SetTableRows(42)
	m.ObserveRender("weight_distribution", 10*time.Millisecond)
	m.ObserveRequest("GET", "/", "200", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.builds.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.builds.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.tableRows))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/", "200")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.BuildFinished(nil)
	m.CacheHit()
	m.RateLimited()
	m.SetTableRows(1)
	m.ObserveRender("x", time.Second)
	m.ObserveRequest("GET", "/", "200", time.Second)
	assert.Nil(t, m.Registry())
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.CacheHit()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "tradepulse_dashboard_cache_hits_total 1"), body)
	assert.Contains(t, body, "go_goroutines")
}
