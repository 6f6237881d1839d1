package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CollectorsAreIndependent(t *testing.T) {
	a := New()
	b := New()

	a.Recomputes.WithLabelValues(ResultSuccess).Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Recomputes.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Recomputes.WithLabelValues(ResultSuccess)))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.PredictionsAccepted.Add(3)
	m.LeaderboardSize.Set(8)
	m.HTTPRequests.WithLabelValues("GET", "/leaderboard", "200").Inc()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "futamigo_predictions_accepted_total 3")
	assert.Contains(t, string(body), "futamigo_leaderboard_entries 8")
	assert.Contains(t, string(body), `futamigo_http_requests_total{method="GET",route="/leaderboard",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
