package obs

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	messages     *prometheus.CounterVec
	messageTime  *prometheus.HistogramVec
	quotes       *prometheus.CounterVec
	discounts    *prometheus.CounterVec
	transitions  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pousada_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pousada_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		messages: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pousada_bus_messages_total",
			Help: "Commands and queries handled, by outcome.",
		}, []string{"kind", "key", "outcome"}),
		messageTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pousada_bus_message_duration_seconds",
			Help:    "Command and query handling latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind", "key"}),
		quotes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pousada_quotes_total",
			Help: "Checkout quotes computed, by number of rooms.",
		}, []string{"rooms"}),
		discounts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pousada_discount_evaluations_total",
			Help: "Discount code evaluations, by result and rejection reason.",
		}, []string{"result", "reason"}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pousada_reservation_transitions_total",
			Help: "Reservations entering each state.",
		}, []string{"state"}),
	}
}

// Observe implements middleware.Observer.
func (m *Metrics) Observe(kind, key string, elapsed time.Duration, err error) {
	m.messages.WithLabelValues(kind, key, outcome(err)).Inc()
	m.messageTime.WithLabelValues(kind, key).Observe(elapsed.Seconds())
}

func (m *Metrics) QuoteComputed(rooms int) {
	m.quotes.WithLabelValues(strconv.Itoa(rooms)).Inc()
}

func (m *Metrics) DiscountEvaluated(accepted bool, reason string) {
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	m.discounts.WithLabelValues(result, reason).Inc()
}

func (m *Metrics) ReservationTransitioned(state string) {
	m.transitions.WithLabelValues(state).Inc()
}

// HTTP records every request by its route template; unmatched paths share one label.
func (m *Metrics) HTTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
