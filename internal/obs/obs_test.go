package obs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goodsmile/clinic/internal/realtime"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "json", "warn")
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	assert.Equal(t, zerolog.InfoLevel, newLogger(&buf, "json", "nonsense").GetLevel())
}

func TestRequestLoggerRecordsRoute(t *testing.T) {
	var buf bytes.Buffer
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger{Logger: newLogger(&buf, "json", "info")}.Middleware)
	r.Get("/api/expenses/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/expenses/9", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "/api/expenses/{id}", line["route"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
	assert.NotEmpty(t, line["request_id"])
}

func TestMetricsMiddlewareAndNotify(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("clinic", reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ReqTotal.WithLabelValues(http.MethodGet, "/health", "204")))
	assert.NotZero(t, testutil.CollectAndCount(m.ReqDur))

	require.NoError(t, m.Notify(context.Background(), realtime.Change{Table: realtime.TableExpenses, Event: realtime.EventInsert}))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LedgerWrites.WithLabelValues("expenses", "INSERT")))

	m.Bill("pdf")
	m.Rejected("closed_day")
	m.LoginFailed()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BillsTotal.WithLabelValues("pdf")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RejectedTotal.WithLabelValues("closed_day")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LoginFailures))
}

func TestMetricsUnmatchedRoutesShareOneSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("clinic", reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})
	for i := 0; i < 50; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, fmt.Sprintf("/scan-%d", i), nil))
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.ReqTotal))
	assert.Equal(t, float64(50), testutil.ToFloat64(m.ReqTotal.WithLabelValues(http.MethodGet, "unknown", "404")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.Bill("json")
	m.Rejected("x")
	m.LoginFailed()
	require.NoError(t, m.Notify(context.Background(), realtime.Change{}))
	h := m.Middleware(http.NotFoundHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
