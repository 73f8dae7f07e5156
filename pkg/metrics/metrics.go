package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	NotesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "jotpad", Name: "notes_created_total", Help: "Number of notes accepted and persisted."},
	)
	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jotpad", Name: "note_validation_failures_total", Help: "Number of rejected note fields by field name."},
		[]string{"field"},
	)
	WatchSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "jotpad", Name: "watch_subscribers", Help: "Currently connected live-list subscribers."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jotpad", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "jotpad", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(NotesCreated)
	reg.MustRegister(ValidationFailures)
	reg.MustRegister(WatchSubscribers)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
