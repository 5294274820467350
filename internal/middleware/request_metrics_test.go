package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2beens/coachstats/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMetrics(t *testing.T) {
	metricsManager := metrics.NewTestManager()

	router := mux.NewRouter()
	router.HandleFunc("/players/{id}/progress/summary", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["id"] == "bad" {
			w.WriteHeader(http.StatusBadRequest)
		}
	})
	router.Use(RequestMetrics(metricsManager))

	for _, id := range []string{"p1", "p2", "bad"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest("GET", "/players/"+id+"/progress/summary", nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metricsManager.CounterRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsManager.CounterRequests.WithLabelValues("GET", "400")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metricsManager.GaugeRequests))
	// one series per route template, not per player
	assert.Equal(t, 2, testutil.CollectAndCount(metricsManager.HistogramRequestDuration))
}

func TestDrainAndCloseRequest(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader("leftover payload")}
	req := httptest.NewRequest("POST", "/summaries/logbook", nil)
	req.Body = body

	DrainAndCloseRequest()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, body.closed)
	rest, err := io.ReadAll(body.Reader)
	require.NoError(t, err)
	assert.Empty(t, rest)
}

func TestLogRequest(t *testing.T) {
	rr := httptest.NewRecorder()
	LogRequest()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}
