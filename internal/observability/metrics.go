package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics - метрики сервиса в собственном реестре (без паник при повторном создании в тестах).
type Metrics struct {
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	offers          *prometheus.CounterVec
	orders          *prometheus.CounterVec
	reviews         *prometheus.CounterVec
	conflicts       *prometheus.CounterVec
	denials         *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coderr_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		offers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coderr_offer_events_total",
				Help: "Offer catalog mutations.",
			},
			[]string{"event"},
		),
		orders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coderr_order_events_total",
				Help: "Order ledger events (created, status transitions).",
			},
			[]string{"event"},
		),
		reviews: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coderr_review_events_total",
				Help: "Review ledger mutations.",
			},
			[]string{"event"},
		),
		conflicts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coderr_uniqueness_conflicts_total",
				Help: "Rejected duplicates, by entity and detection point.",
			},
			[]string{"entity", "source"},
		),
		denials: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coderr_authorization_denials_total",
				Help: "Requests rejected by the authorization policy.",
			},
			[]string{"resource"},
		),
	}
}

func (m *Metrics) IncrOffer(event string) {
	m.offers.WithLabelValues(event).Inc()
}

func (m *Metrics) IncrOrder(event string) {
	m.orders.WithLabelValues(event).Inc()
}

func (m *Metrics) IncrReview(event string) {
	m.reviews.WithLabelValues(event).Inc()
}

// IncrConflict: source = "precheck" или "constraint"
func (m *Metrics) IncrConflict(entity, source string) {
	m.conflicts.WithLabelValues(entity, source).Inc()
}

func (m *Metrics) IncrDenial(resource string) {
	m.denials.WithLabelValues(resource).Inc()
}

// Handler отдает /metrics из собственного реестра
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Middleware меряет длительность запросов по шаблону маршрута chi
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		m.requestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
