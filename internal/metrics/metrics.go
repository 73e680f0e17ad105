package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Writes through the API
	EntitiesWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entities_written_total",
			Help: "Successful entity writes",
		},
		[]string{"entity", "action"}, // user|listing|booking|review, created|updated|deleted|cancelled
	)
	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_failures_total",
			Help: "Writes rejected by validation",
		},
		[]string{"entity"},
	)

	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // ok|rejected
	)

	initOnce sync.Once
)

// /metrics endpoint handler
var Handler = promhttp.Handler

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(EntitiesWritten)
		prometheus.MustRegister(ValidationFailures)
		prometheus.MustRegister(LoginAttempts)
	})
}
