package obs

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"goodsmile/clinic/internal/realtime"
)

// Metrics groups the Prometheus collectors of the clinic server.
type Metrics struct {
	ReqTotal      *prometheus.CounterVec
	ReqDur        *prometheus.HistogramVec
	BillsTotal    *prometheus.CounterVec
	RejectedTotal *prometheus.CounterVec
	LedgerWrites  *prometheus.CounterVec
	LoginFailures prometheus.Counter
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		BillsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_generated_total",
			Help:      "Bills computed, by output format.",
		}, []string{"format"}),
		RejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_rejected_total",
			Help:      "Appointments refused by the clinic hours policy.",
		}, []string{"reason"}),
		LedgerWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_writes_total",
			Help:      "Committed writes by table and event.",
		}, []string{"table", "event"}),
		LoginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_failures_total",
			Help:      "Rejected session logins.",
		}),
	}
	reg.MustRegister(m.ReqTotal, m.ReqDur, m.BillsTotal, m.RejectedTotal, m.LedgerWrites, m.LoginFailures)
	return m
}

// Notify counts a committed write. It lets Metrics sit on the realtime hub.
func (m *Metrics) Notify(_ context.Context, change realtime.Change) error {
	if m == nil {
		return nil
	}
	m.LedgerWrites.WithLabelValues(change.Table, string(change.Event)).Inc()
	return nil
}

// Bill counts a generated bill.
func (m *Metrics) Bill(format string) {
	if m == nil {
		return
	}
	m.BillsTotal.WithLabelValues(format).Inc()
}

// Rejected counts a refused appointment.
func (m *Metrics) Rejected(reason string) {
	if m == nil {
		return
	}
	m.RejectedTotal.WithLabelValues(reason).Inc()
}

// LoginFailed counts a refused login.
func (m *Metrics) LoginFailed() {
	if m == nil {
		return
	}
	m.LoginFailures.Inc()
}

// Middleware records request counts and latency per route.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unknown"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		m.ReqTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.ReqDur.WithLabelValues(r.Method, route).Observe(float64(time.Since(start)) / float64(time.Millisecond))
	})
}
