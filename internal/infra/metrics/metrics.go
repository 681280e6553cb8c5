// Package metrics exposes Prometheus counters for rendering and the scratch
// file lifecycle.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry so tests can
// build as many instances as they like. All methods are nil-safe.
type Metrics struct {
	registry *prometheus.Registry

	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	cacheHits      *prometheus.CounterVec
	scratchWrites  *prometheus.CounterVec
	scratchBytes   prometheus.Histogram
	downloadsTotal *prometheus.CounterVec
	scratchServes  *prometheus.CounterVec
	cleanupsTotal  *prometheus.CounterVec
}

// New creates and registers every collector.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.rendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sppt_renders_total",
		Help: "Notices rendered, by format and outcome.",
	}, []string{"format", "status"})
	m.renderDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sppt_render_duration_seconds",
		Help:    "Time spent rendering one notice.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"format"})
	m.cacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sppt_render_cache_total",
		Help: "Render cache lookups, by result.",
	}, []string{"result"})
	m.scratchWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sppt_scratch_files_written_total",
		Help: "Files persisted to the scratch area, by extension.",
	}, []string{"ext"})
	m.scratchBytes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sppt_scratch_file_size_bytes",
		Help:    "Size of persisted scratch files.",
		Buckets: prometheus.ExponentialBuckets(1024, 2, 10),
	})
	m.downloadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sppt_downloads_total",
		Help: "Download requests, by outcome.",
	}, []string{"status"})
	m.scratchServes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sppt_scratch_files_served_total",
		Help: "Scratch files read back for download, by extension.",
	}, []string{"ext"})
	m.cleanupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sppt_scratch_cleanups_total",
		Help: "Scheduled scratch deletions, by outcome.",
	}, []string{"status"})

	m.registry.MustRegister(
		m.rendersTotal, m.renderDuration, m.cacheHits,
		m.scratchWrites, m.scratchBytes, m.downloadsTotal, m.scratchServes, m.cleanupsTotal,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRender records one render attempt.
func (m *Metrics) ObserveRender(format string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.rendersTotal.WithLabelValues(format, status).Inc()
	m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
}

// CacheResult records "hit" or "miss".
func (m *Metrics) CacheResult(result string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(result).Inc()
}

// Download records the outcome of one download request.
func (m *Metrics) Download(status string) {
	if m == nil {
		return
	}
	m.downloadsTotal.WithLabelValues(status).Inc()
}

// Persisted implements scratch.Observer.
func (m *Metrics) Persisted(ext string, size int) {
	if m == nil {
		return
	}
	m.scratchWrites.WithLabelValues(ext).Inc()
	m.scratchBytes.Observe(float64(size))
}

// Served implements scratch.Observer.
func (m *Metrics) Served(ext string) {
	if m == nil {
		return
	}
	m.scratchServes.WithLabelValues(ext).Inc()
}

// Removed implements scratch.Observer.
func (m *Metrics) Removed(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.cleanupsTotal.WithLabelValues(status).Inc()
}
