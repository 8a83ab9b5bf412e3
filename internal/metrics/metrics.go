// Package metrics exposes chart draw passes and marker outcomes to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sweeney/intake-chart/internal/chart"
)

const (
	namespace = "intake"
	subsystem = "chart"
)

// Collector represents chart metrics.
type Collector struct {
	Draws         prometheus.Counter
	MarkersDrawn  *prometheus.CounterVec
	MarkerSkips   *prometheus.CounterVec
	Samples       *prometheus.CounterVec
	MQTTConnected prometheus.Gauge
}

// New creates new chart metrics.
func New() *Collector {
	return &Collector{
		Draws: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "draws_total",
				Help:      "Total number of full chart draw passes.",
			},
		),
		MarkersDrawn: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "markers_drawn_total",
				Help:      "Total number of markers drawn, by marker.",
			},
			[]string{"marker"},
		),
		MarkerSkips: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "marker_skips_total",
				Help:      "Total number of markers not drawn, by marker and reason.",
			},
			[]string{"marker", "reason"},
		),
		Samples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "samples_total",
				Help:      "Total number of feed samples added to the chart, by kind.",
			},
			[]string{"kind"},
		),
		MQTTConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "mqtt_connected",
				Help:      "1 if the MQTT broker connection is open.",
			},
		),
	}
}

// ObserveDraw records the outcome of one draw pass.
func (c *Collector) ObserveDraw(report chart.DrawReport) {
	c.Draws.Inc()
	if report.TotalDrawn {
		c.MarkersDrawn.WithLabelValues(chart.MarkerTotal).Inc()
	}
	if report.ConditionDrawn > 0 {
		c.MarkersDrawn.WithLabelValues(chart.MarkerCondition).Add(float64(report.ConditionDrawn))
	}
	for _, s := range report.Skips {
		c.MarkerSkips.WithLabelValues(s.Marker, s.Reason.String()).Inc()
	}
}

// ObserveSamples records n samples of the given kind.
func (c *Collector) ObserveSamples(kind string, n int) {
	if n > 0 {
		c.Samples.WithLabelValues(kind).Add(float64(n))
	}
}

// SetMQTTConnected records the broker connection state.
func (c *Collector) SetMQTTConnected(connected bool) {
	if connected {
		c.MQTTConnected.Set(1)
		return
	}
	c.MQTTConnected.Set(0)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.Draws.Describe(ch)
	c.MarkersDrawn.Describe(ch)
	c.MarkerSkips.Describe(ch)
	c.Samples.Describe(ch)
	c.MQTTConnected.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.Draws.Collect(ch)
	c.MarkersDrawn.Collect(ch)
	c.MarkerSkips.Collect(ch)
	c.Samples.Collect(ch)
	c.MQTTConnected.Collect(ch)
}

// check interfaces
var (
	_ prometheus.Collector = (*Collector)(nil)
)
