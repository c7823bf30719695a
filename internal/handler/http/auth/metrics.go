package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "board_login_duration_seconds",
			Help:    "Time spent checking credentials and issuing a session",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
	)

	tokenRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_session_tokens_rejected_total",
			Help: "Session tokens rejected by the identify middleware",
		},
		[]string{"reason"}, // expired | invalid
	)
)

// RecordLoginDuration observes one login attempt.
func RecordLoginDuration(seconds float64) {
	loginDuration.Observe(seconds)
}

// RecordTokenRejected counts a rejected session token.
func RecordTokenRejected(reason string) {
	tokenRejections.WithLabelValues(reason).Inc()
}
