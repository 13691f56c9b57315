// Package metrics records seed run outcomes in a private Prometheus registry
// and, when a Pushgateway is configured, pushes them at the end of the run.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

type SeedMetrics struct {
	registry        *prometheus.Registry
	runs            *prometheus.CounterVec
	recordsUpserted prometheus.Counter
	duration        prometheus.Gauge
	lastSuccess     prometheus.Gauge
	now             func() time.Time
}

func NewSeedMetrics() *SeedMetrics {
	m := &SeedMetrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "team_members_seed_runs_total",
			Help: "Seed runs by outcome.",
		}, []string{"status"}),
		recordsUpserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "team_members_seed_records_upserted_total",
			Help: "Records committed to team_members.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "team_members_seed_duration_seconds",
			Help: "Wall time of the last seed run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "team_members_seed_last_success_timestamp_seconds",
			Help: "Unix time of the last successful seed run.",
		}),
		now: time.Now,
	}
	m.registry.MustRegister(m.runs, m.recordsUpserted, m.duration, m.lastSuccess)
	return m
}

// ObserveRun records one finished run. records counts committed rows and is
// ignored for failed runs, which commit nothing.
func (m *SeedMetrics) ObserveRun(err error, records int, elapsed time.Duration) {
	m.duration.Set(elapsed.Seconds())
	if err != nil {
		m.runs.WithLabelValues(StatusFailure).Inc()
		return
	}
	m.runs.WithLabelValues(StatusSuccess).Inc()
	m.recordsUpserted.Add(float64(records))
	m.lastSuccess.Set(float64(m.now().Unix()))
}

func (m *SeedMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Push sends the registry to the Pushgateway at url under job. An empty url
// disables pushing.
func (m *SeedMetrics) Push(ctx context.Context, url, job string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
