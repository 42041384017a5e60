// Package metrics exposes walk progress as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lukaszgryglicki/photonwalk/internal/photonwalk"
)

// Collector is both a Recorder and a Reporter.
type Collector struct {
	steps       prometheus.Counter
	walks       prometheus.Counter
	distance    prometheus.Gauge
	escapeYears prometheus.Histogram
	totalSteps  prometheus.Histogram
	duration    prometheus.Histogram
}

var (
	_ photonwalk.Recorder = (*Collector)(nil)
	_ photonwalk.Reporter = (*Collector)(nil)
)

// New creates the collector and registers it with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "photonwalk_steps_total",
			Help: "Total number of random walk steps taken",
		}),
		walks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "photonwalk_walks_completed_total",
			Help: "Total number of walks whose photon escaped",
		}),
		distance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "photonwalk_distance",
			Help: "Current distance of the photon from the star's center, in scene units",
		}),
		escapeYears: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "photonwalk_escape_time_years",
			Help:    "Estimated physical escape time of completed walks",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 10),
		}),
		totalSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "photonwalk_walk_steps",
			Help:    "Number of steps of completed walks",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "photonwalk_walk_duration_seconds",
			Help:    "Wall-clock duration of completed walks",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.steps, c.walks, c.distance, c.escapeYears, c.totalSteps, c.duration)
	return c
}

func (c *Collector) Record(s photonwalk.Segment) {
	c.steps.Inc()
	c.distance.Set(photonwalk.Distance(s.To))
}

func (c *Collector) Report(st photonwalk.Stats) {
	c.walks.Inc()
	c.escapeYears.Observe(float64(st.EscapeYears))
	c.totalSteps.Observe(float64(st.TotalSteps))
	c.duration.Observe(st.Duration)
}

// Reset zeroes the distance gauge when a new walk starts.
func (c *Collector) Reset() { c.distance.Set(0) }
