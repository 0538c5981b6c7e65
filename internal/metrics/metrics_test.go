package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, collector *Collector) string {
	rr := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestCollector_InstrumentRouteUsesPattern(t *testing.T) {
	collector, err := NewCollector()
	require.NoError(t, err)

	handler := collector.InstrumentRoute("/v1/automations/:id", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/automations/abc", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/automations/def", nil))

	body := scrape(t, collector)
	assert.Contains(t, body, `engagement_http_requests_total{method="GET",route="/v1/automations/:id",status="404"} 2`)
	assert.Contains(t, body, `engagement_http_request_duration_seconds_count{method="GET",route="/v1/automations/:id",status="404"} 2`)
}

func TestCollector_DispatcherMetrics(t *testing.T) {
	collector, err := NewCollector()
	require.NoError(t, err)

	collector.ObserveAction("twitter", "engage:like", OutcomeSuccess)
	collector.ObserveAction("twitter", "engage:like", OutcomeSuccess)
	collector.ObserveAction("youtube", "post", OutcomeDeferred)
	collector.SetQuotaRemaining("twitter", 400)
	collector.SetQueueDepth(12)

	body := scrape(t, collector)
	assert.Contains(t, body, `engagement_dispatcher_actions_total{outcome="success",platform="twitter",type="engage:like"} 2`)
	assert.Contains(t, body, `engagement_dispatcher_actions_total{outcome="quota_deferred",platform="youtube",type="post"} 1`)
	assert.Contains(t, body, `engagement_quota_remaining_units{platform="twitter"} 400`)
	assert.Contains(t, body, `engagement_dispatcher_queue_depth 12`)
}
