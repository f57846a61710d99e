/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Reporter interface and implementations for inference telemetry. Analyzers
notify a Reporter of lock decisions, backouts and outliers; the profiler reports sample
volumes. Implementations log through logrus or export Prometheus counters.
*/

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/kleascm/columnscout/pkg/lattice"
)

// Reporter receives analyzer events. Implementations must be safe for concurrent use,
// one Reporter is shared by every column of a profile.
type Reporter interface {
	// OnLock is called once when a column's type is locked
	OnLock(column string, t lattice.TypeInfo, samples int64)
	// OnBackout is called when a locked type is widened
	OnBackout(column string, from, to lattice.TypeInfo)
	// OnOutlier is called for each value that does not match the locked type
	OnOutlier(column string, value string)
	// OnSamples reports a number of values consumed for a column
	OnSamples(column string, count int64)
}

// NopReporter discards every event
type NopReporter struct{}

func (NopReporter) OnLock(string, lattice.TypeInfo, int64)             {}
func (NopReporter) OnBackout(string, lattice.TypeInfo, lattice.TypeInfo) {}
func (NopReporter) OnOutlier(string, string)                            {}
func (NopReporter) OnSamples(string, int64)                             {}

// LoggerReporter logs events using logrus
type LoggerReporter struct {
	logger logrus.FieldLogger
}

// NewLoggerReporter creates a new LoggerReporter
func NewLoggerReporter(logger logrus.FieldLogger) *LoggerReporter {
	return &LoggerReporter{logger: logger}
}

// OnLock logs the locked type
func (r *LoggerReporter) OnLock(column string, t lattice.TypeInfo, samples int64) {
	r.logger.WithFields(logrus.Fields{
		"column":  column,
		"type":    t.String(),
		"samples": samples,
	}).Debug("Column type locked")
}

// OnBackout logs the widening
func (r *LoggerReporter) OnBackout(column string, from, to lattice.TypeInfo) {
	r.logger.WithFields(logrus.Fields{
		"column": column,
		"from":   from.String(),
		"to":     to.String(),
	}).Info("Column type backed out")
}

// OnOutlier logs the value at trace level
func (r *LoggerReporter) OnOutlier(column string, value string) {
	r.logger.WithFields(logrus.Fields{"column": column, "value": value}).Trace("Outlier")
}

// OnSamples logs the sample volume
func (r *LoggerReporter) OnSamples(column string, count int64) {
	r.logger.WithFields(logrus.Fields{"column": column, "count": count}).Debug("Samples consumed")
}

// PrometheusReporter exports counters on its own registry
type PrometheusReporter struct {
	registry *prometheus.Registry
	samples  *prometheus.CounterVec
	locks    *prometheus.CounterVec
	backouts *prometheus.CounterVec
	outliers *prometheus.CounterVec
}

// NewPrometheusReporter creates a reporter with a private registry
func NewPrometheusReporter() *PrometheusReporter {
	r := &PrometheusReporter{
		registry: prometheus.NewRegistry(),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "columnscout",
			Name:      "samples_total",
			Help:      "Values consumed per column.",
		}, []string{"column"}),
		locks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "columnscout",
			Name:      "locks_total",
			Help:      "Columns locked, by type.",
		}, []string{"type"}),
		backouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "columnscout",
			Name:      "backouts_total",
			Help:      "Locked types widened after lock.",
		}, []string{"from", "to"}),
		outliers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "columnscout",
			Name:      "outliers_total",
			Help:      "Values not matching the locked type, per column.",
		}, []string{"column"}),
	}
	r.registry.MustRegister(r.samples, r.locks, r.backouts, r.outliers)
	return r
}

// Registry returns the registry holding the reporter's collectors
func (r *PrometheusReporter) Registry() *prometheus.Registry { return r.registry }

// WriteToTextfile writes the current counters in the text exposition format
func (r *PrometheusReporter) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func (r *PrometheusReporter) OnLock(_ string, t lattice.TypeInfo, _ int64) {
	r.locks.WithLabelValues(t.ID).Inc()
}

func (r *PrometheusReporter) OnBackout(_ string, from, to lattice.TypeInfo) {
	r.backouts.WithLabelValues(from.ID, to.ID).Inc()
}

func (r *PrometheusReporter) OnOutlier(column string, _ string) {
	r.outliers.WithLabelValues(column).Inc()
}

func (r *PrometheusReporter) OnSamples(column string, count int64) {
	r.samples.WithLabelValues(column).Add(float64(count))
}

// Multi fans events out to several reporters
type Multi []Reporter

func (m Multi) OnLock(column string, t lattice.TypeInfo, samples int64) {
	for _, r := range m {
		r.OnLock(column, t, samples)
	}
}

func (m Multi) OnBackout(column string, from, to lattice.TypeInfo) {
	for _, r := range m {
		r.OnBackout(column, from, to)
	}
}

func (m Multi) OnOutlier(column string, value string) {
	for _, r := range m {
		r.OnOutlier(column, value)
	}
}

func (m Multi) OnSamples(column string, count int64) {
	for _, r := range m {
		r.OnSamples(column, count)
	}
}
