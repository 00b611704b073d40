package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"coderr/internal/observability"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	logger, err := observability.NewLogger("debug")
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = observability.NewLogger("warn")
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = observability.NewLogger("loud")
	require.Error(t, err)
}

func TestZapLoggerMiddleware_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	mw := observability.ZapLoggerMiddleware(zap.New(core))

	for _, status := range []int{http.StatusOK, http.StatusNotFound, http.StatusInternalServerError} {
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/offers", nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	require.Equal(t, "/api/offers", entries[1].ContextMap()["path"])
	require.EqualValues(t, http.StatusNotFound, entries[1].ContextMap()["status"])
}

func TestMetrics_Exposition(t *testing.T) {
	m := observability.NewMetrics()
	m.IncrOffer("created")
	m.IncrOffer("created")
	m.IncrOrder("status_completed")
	m.IncrReview("deleted")
	m.IncrConflict("review", "constraint")
	m.IncrDenial("offer")

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)

	require.Contains(t, out, `coderr_offer_events_total{event="created"} 2`)
	require.Contains(t, out, `coderr_order_events_total{event="status_completed"} 1`)
	require.Contains(t, out, `coderr_review_events_total{event="deleted"} 1`)
	require.Contains(t, out, `coderr_uniqueness_conflicts_total{entity="review",source="constraint"} 1`)
	require.Contains(t, out, `coderr_authorization_denials_total{resource="offer"} 1`)
	require.Contains(t, out, `coderr_http_request_duration_seconds_count{method="GET",route="unmatched",status="418"} 1`)
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	require.NotPanics(t, func() {
		observability.NewMetrics()
		observability.NewMetrics()
	})
}
