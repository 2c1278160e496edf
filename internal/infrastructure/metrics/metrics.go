package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"journal-service/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	entriesSaved     *prometheus.CounterVec
	feedbackRequests *prometheus.CounterVec
	remindersSent    prometheus.Counter
	httpDuration     *prometheus.HistogramVec
}

// New creates and registers all collectors on a private registry
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		entriesSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_entries_saved_total",
			Help:      "Journal entry writes by patched field.",
		}, []string{"field"}),
		feedbackRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_requests_total",
			Help:      "AI feedback requests by outcome.",
		}, []string{"outcome"}),
		remindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_sent_total",
			Help:      "Daily reminder emails sent.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.entriesSaved,
		m.feedbackRequests,
		m.remindersSent,
		m.httpDuration,
	)

	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// EntrySaved counts a successful reconcile
func (m *Metrics) EntrySaved(patch entity.EntryPatch) {
	if m == nil {
		return
	}
	field := "journal"
	switch {
	case patch.Rating != nil && patch.JournalText != nil:
		field = "both"
	case patch.Rating != nil:
		field = "rating"
	}
	m.entriesSaved.WithLabelValues(field).Inc()
}

// FeedbackRequested counts a feedback request by its result
func (m *Metrics) FeedbackRequested(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, entity.ErrQuotaExceeded):
		outcome = "quota_exceeded"
	default:
		outcome = "error"
	}
	m.feedbackRequests.WithLabelValues(outcome).Inc()
}

// ReminderSent counts a delivered reminder
func (m *Metrics) ReminderSent() {
	if m == nil {
		return
	}
	m.remindersSent.Inc()
}

// ObserveHTTP records the latency of a handled request
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
