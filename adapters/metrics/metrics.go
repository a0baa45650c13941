// Package metrics provides Prometheus metrics collection for authorkit.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/artpar/authorkit/core/plugin"
)

// Collector holds all Prometheus metrics for authorkit.
type Collector struct {
	// Parse metrics
	ParsesTotal   *prometheus.CounterVec
	ParseDuration prometheus.Histogram

	// Plugin metrics
	PluginFailures *prometheus.CounterVec

	// Validation metrics
	ValidationWarnings prometheus.Counter

	// Render metrics
	RendersTotal *prometheus.CounterVec

	// Store metrics
	DocumentsStored prometheus.Counter
}

// New creates a collector with all metrics registered on reg.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		ParsesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "authorkit",
				Name:      "parses_total",
				Help:      "Total number of parse calls",
			},
			[]string{"status"},
		),
		ParseDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "authorkit",
				Name:      "parse_duration_seconds",
				Help:      "Parse duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
		),
		PluginFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "authorkit",
				Name:      "plugin_failures_total",
				Help:      "Total number of plugin invocation failures",
			},
			[]string{"plugin", "code"},
		),
		ValidationWarnings: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "authorkit",
				Name:      "validation_warnings_total",
				Help:      "Total number of validation warnings produced",
			},
		),
		RendersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "authorkit",
				Name:      "renders_total",
				Help:      "Total number of render calls",
			},
			[]string{"format", "status"},
		),
		DocumentsStored: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "authorkit",
				Name:      "documents_stored_total",
				Help:      "Total number of documents persisted",
			},
		),
	}
}

// ObservePluginError records a plugin failure if err wraps one.
func (c *Collector) ObservePluginError(err error) {
	var perr *plugin.Error
	if errors.As(err, &perr) {
		c.PluginFailures.WithLabelValues(perr.Plugin, perr.Code).Inc()
	}
}
