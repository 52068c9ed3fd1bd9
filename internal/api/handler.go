package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"goodsmile/clinic/internal/billing"
	"goodsmile/clinic/internal/ledger"
	"goodsmile/clinic/internal/obs"
	"goodsmile/clinic/internal/printout"
	"goodsmile/clinic/internal/realtime"
	"goodsmile/clinic/internal/schedule"
	"goodsmile/clinic/internal/session"
	"goodsmile/clinic/internal/store"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Store       *store.Store
	Ledger      *ledger.Service
	Hub         *realtime.Hub
	Sessions    *session.Manager
	Policy      schedule.Policy
	PDF         printout.PDFRenderer
	Metrics     *obs.Metrics
	Gatherer    prometheus.Gatherer
	Logger      zerolog.Logger
	CORSOrigins []string
	Now         func() time.Time
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store    *store.Store
	ledger   *ledger.Service
	hub      *realtime.Hub
	sessions *session.Manager
	policy   schedule.Policy
	pdf      printout.PDFRenderer
	bills    billing.Assembler
	metrics  *obs.Metrics
	gatherer prometheus.Gatherer
	logger   zerolog.Logger
	origins  []string
	validate *validator.Validate
	now      func() time.Time
}

// New constructs a Handler.
func New(d Deps) *Handler {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	hub := d.Hub
	if hub == nil {
		hub = realtime.NewHub()
	}
	svc := d.Ledger
	if svc == nil {
		svc = &ledger.Service{Source: d.Store, Logger: d.Logger, Now: now}
	}
	return &Handler{
		store:    d.Store,
		ledger:   svc,
		hub:      hub,
		sessions: d.Sessions,
		policy:   d.Policy,
		pdf:      d.PDF,
		bills:    billing.Assembler{Now: now},
		metrics:  d.Metrics,
		gatherer: d.Gatherer,
		logger:   d.Logger,
		origins:  d.CORSOrigins,
		validate: newValidator(),
		now:      now,
	}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.RequestLogger{Logger: h.logger}.Middleware)
	r.Use(h.metrics.Middleware)
	r.Use(middleware.Recoverer)
	if len(h.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/health", h.health)
	if h.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", h.login)

		r.Group(func(pr chi.Router) {
			pr.Use(h.authMiddleware)

			pr.Route("/appointments", func(r chi.Router) {
				r.Get("/", h.listAppointments)
				r.Post("/", h.createAppointment)
				r.Get("/monthly", h.monthlyAppointments)
				r.Put("/{id}", h.updateAppointment)
				r.Delete("/{id}", h.deleteAppointment)
			})

			pr.Route("/transactions", func(r chi.Router) {
				r.Get("/", h.listTransactions)
				r.Post("/", h.createTransaction)
				r.Get("/monthly", h.monthlyTransactions)
				r.Put("/{id}", h.updateTransaction)
				r.Delete("/{id}", h.deleteTransaction)
			})

			pr.Route("/expenses", func(r chi.Router) {
				r.Get("/", h.listExpenses)
				r.Post("/", h.createExpense)
				r.Get("/monthly", h.monthlyExpenses)
				r.Put("/{id}", h.updateExpense)
				r.Delete("/{id}", h.deleteExpense)
			})

			pr.Route("/summary", func(r chi.Router) {
				r.Get("/daily", h.dailySummary)
				r.Get("/monthly", h.monthlySummary)
				r.Get("/monthly.csv", h.monthlyCSV)
			})

			pr.Route("/bills", func(r chi.Router) {
				r.Post("/", h.createBill)
				r.Post("/print", h.printBill)
			})

			pr.Method(http.MethodGet, "/events", realtime.StreamHandler{Hub: h.hub, Logger: h.logger})
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]string{"status": "ok"}
	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			h.logger.Error().Err(err).Msg("health check database ping failed")
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
		}
	}
	respondJSON(w, status, body)
}

// publish announces a committed write. Notifier failures are logged, not
// returned, since the write itself already succeeded.
func (h *Handler) publish(r *http.Request, table string, event realtime.Event, id int64) {
	if _, err := h.hub.Publish(r.Context(), table, event, id); err != nil {
		h.logger.Warn().Err(err).Str("table", table).Int64("record_id", id).Msg("change notification failed")
	}
}

func (h *Handler) today() string {
	return h.now().Format(ledger.DateLayout)
}
