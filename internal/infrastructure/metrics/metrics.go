package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Token metrics
	TokensFormatted prometheus.Counter
	TokensParsed    *prometheus.CounterVec

	// Schedule metrics
	ScheduleChecks *prometheus.CounterVec

	// Toast metrics
	ToastActions    *prometheus.CounterVec
	ToastQueueSize  prometheus.Gauge
	ToastEventsSent *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates all metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Token metrics
		TokensFormatted: factory.NewCounter(prometheus.CounterOpts{
			Name: "daodash_tokens_formatted_total",
			Help: "Total number of token amounts formatted",
		}),
		TokensParsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daodash_tokens_parsed_total",
				Help: "Total number of token amounts parsed, by outcome",
			},
			[]string{"ok"},
		),

		// Schedule metrics
		ScheduleChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daodash_schedule_checks_total",
				Help: "Total proposal schedule checks, by outcome",
			},
			[]string{"ok"},
		),

		// Toast metrics
		ToastActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daodash_toast_actions_total",
				Help: "Total toast queue actions by event type",
			},
			[]string{"event_type"},
		),
		ToastQueueSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "daodash_toast_queue_size",
			Help: "Current number of queued toasts",
		}),
		ToastEventsSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daodash_toast_events_published_total",
				Help: "Total toast events handed to the publisher, by outcome",
			},
			[]string{"status"},
		),

		// Redis metrics
		RedisOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daodash_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "daodash_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "daodash_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

// TokenFormatted implements usecase.MetricsRecorder.
func (m *Metrics) TokenFormatted() {
	m.TokensFormatted.Inc()
}

// TokenParsed implements usecase.MetricsRecorder.
func (m *Metrics) TokenParsed(ok bool) {
	m.TokensParsed.WithLabelValues(strconv.FormatBool(ok)).Inc()
}

// ScheduleChecked implements usecase.MetricsRecorder.
func (m *Metrics) ScheduleChecked(ok bool) {
	m.ScheduleChecks.WithLabelValues(strconv.FormatBool(ok)).Inc()
}

// ToastDispatched implements usecase.MetricsRecorder.
func (m *Metrics) ToastDispatched(eventType string) {
	m.ToastActions.WithLabelValues(eventType).Inc()
}

// ToastQueueLength implements usecase.MetricsRecorder.
func (m *Metrics) ToastQueueLength(n int) {
	m.ToastQueueSize.Set(float64(n))
}

// EventPublished records the outcome of a relayed toast event.
func (m *Metrics) EventPublished(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ToastEventsSent.WithLabelValues(status).Inc()
}

// RedisOperation records a redis call and its failure, if any.
func (m *Metrics) RedisOperation(operation string, err error) {
	m.RedisOperations.WithLabelValues(operation).Inc()
	if err != nil {
		m.RedisErrors.WithLabelValues(operation).Inc()
	}
}

// RateLimited records a rejected request.
func (m *Metrics) RateLimited() {
	m.RateLimitHits.Inc()
}
