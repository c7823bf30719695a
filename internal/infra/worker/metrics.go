package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics times refresher runs. Run counts by status live in the board
// metrics (board_stats_refresh_total).
type Metrics struct {
	// RunDuration observes how long one refresh took, successful or not.
	RunDuration prometheus.Histogram

	// LastSuccess is the unix time of the last successful refresh.
	LastSuccess prometheus.Gauge
}

// NewMetrics builds unregistered collectors. Call MustRegister once.
func NewMetrics() *Metrics {
	return &Metrics{
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "board_stats_refresh_duration_seconds",
			Help:    "Duration of board statistics refresh runs",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "board_stats_refresh_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful statistics refresh",
		}),
	}
}

// MustRegister registers the collectors with reg, or the default registerer
// when reg is nil.
func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.RunDuration, m.LastSuccess)
}

func (m *Metrics) observe(d time.Duration, ok bool, at time.Time) {
	if m == nil {
		return
	}
	m.RunDuration.Observe(d.Seconds())
	if ok {
		m.LastSuccess.Set(float64(at.Unix()))
	}
}
