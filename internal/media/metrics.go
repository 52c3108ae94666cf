package media

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the outcome of the most recent reconciliation run.
type Metrics struct {
	files   *prometheus.GaugeVec
	lastRun prometheus.Gauge
}

// NewMetrics registers the reconciliation gauges on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		files: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "media_reconcile_files",
				Help: "Media records per outcome in the last reconciliation run.",
			},
			[]string{"outcome"},
		),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "media_reconcile_last_run_timestamp_seconds",
			Help: "Unix time of the last reconciliation run.",
		}),
	}
	for _, c := range []prometheus.Collector{m.files, m.lastRun} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(o Outcome) {
	m.files.WithLabelValues("copied").Set(float64(o.Copied))
	m.files.WithLabelValues("skipped").Set(float64(o.Skipped))
	m.files.WithLabelValues("not_found").Set(float64(o.NotFound))
	m.lastRun.Set(float64(time.Now().Unix()))
}
