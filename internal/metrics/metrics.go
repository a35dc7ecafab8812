// Package metrics records per-run gauges and writes them in the Prometheus
// text format for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dugraph"

// Run holds the gauges describing one collection and estimation run.
type Run struct {
	registry *prometheus.Registry

	files         prometheus.Gauge
	bytes         prometheus.Gauge
	anomalies     prometheus.Gauge
	walkErrors    prometheus.Gauge
	samples       prometheus.Gauge
	timelineStart prometheus.Gauge
	timelineEnd   prometheus.Gauge
	scanDuration  prometheus.Gauge
}

// Observation is the data recorded for a run.
type Observation struct {
	Files         int64
	Bytes         int64
	Anomalies     int
	WalkErrors    int64
	Samples       int
	TimelineStart float64
	TimelineEnd   float64
	ScanDuration  time.Duration
}

// New creates a Run backed by its own registry.
func New() *Run {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}

	return &Run{
		registry:      reg,
		files:         gauge("files", "Number of files collected"),
		bytes:         gauge("bytes", "Total size of collected files in bytes"),
		anomalies:     gauge("anomalies", "Files whose creation time was later than their modification time"),
		walkErrors:    gauge("walk_errors", "Entries that could not be read during the walk"),
		samples:       gauge("timeline_samples", "Number of samples in the estimated timeline"),
		timelineStart: gauge("timeline_start_seconds", "Timestamp of the first timeline sample"),
		timelineEnd:   gauge("timeline_end_seconds", "Timestamp of the last timeline sample"),
		scanDuration:  gauge("scan_duration_seconds", "Time spent walking directories"),
	}
}

// Observe sets all gauges from obs.
func (r *Run) Observe(obs Observation) {
	r.files.Set(float64(obs.Files))
	r.bytes.Set(float64(obs.Bytes))
	r.anomalies.Set(float64(obs.Anomalies))
	r.walkErrors.Set(float64(obs.WalkErrors))
	r.samples.Set(float64(obs.Samples))
	r.timelineStart.Set(obs.TimelineStart)
	r.timelineEnd.Set(obs.TimelineEnd)
	r.scanDuration.Set(obs.ScanDuration.Seconds())
}

// Registry exposes the underlying registry.
func (r *Run) Registry() *prometheus.Registry {
	return r.registry
}

// WriteFile writes the gauges to path atomically.
func (r *Run) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %q: %w", path, err)
	}

	return nil
}
