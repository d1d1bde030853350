package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tilefield"

// Prometheus implements every hook interface with Prometheus collectors.
type Prometheus struct {
	layouts       *prometheus.CounterVec
	layoutSeconds *prometheus.HistogramVec
	cells         *prometheus.GaugeVec
	renders       *prometheus.CounterVec
	renderBytes   *prometheus.GaugeVec
	cacheOps      *prometheus.CounterVec
	requests      *prometheus.CounterVec
	requestTime   *prometheus.HistogramVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		layouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layouts_total",
			Help:      "Field layouts by variant and result.",
		}, []string{"variant", "result"}),
		layoutSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Time spent laying out a field.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"variant"}),
		cells: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cells",
			Help:      "Cells in the most recent layout by variant and kind.",
		}, []string{"variant", "kind"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Rendered artifacts by variant, format and result.",
		}, []string{"variant", "format", "result"}),
		renderBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "artifact_bytes",
			Help:      "Size of the most recent artifact by variant and format.",
		}, []string{"variant", "format"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache operations by key type and outcome.",
		}, []string{"key_type", "op"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(p.layouts, p.layoutSeconds, p.cells, p.renders, p.renderBytes, p.cacheOps, p.requests, p.requestTime)
	return p
}

// Register installs p as the pipeline, cache and HTTP hooks.
func (p *Prometheus) Register() {
	SetPipelineHooks(p)
	SetCacheHooks(p)
	SetHTTPHooks(p)
}

func (p *Prometheus) OnLayoutStart(context.Context, string) {}

func (p *Prometheus) OnLayoutComplete(_ context.Context, variant string, stats LayoutStats, d time.Duration, err error) {
	p.layouts.WithLabelValues(variant, result(err)).Inc()
	if err != nil {
		return
	}
	p.layoutSeconds.WithLabelValues(variant).Observe(d.Seconds())
	p.cells.WithLabelValues(variant, "kept").Set(float64(stats.Cells))
	p.cells.WithLabelValues(variant, "dropped").Set(float64(stats.Dropped))
	p.cells.WithLabelValues(variant, "excluded").Set(float64(stats.Excluded))
	p.cells.WithLabelValues(variant, "icon").Set(float64(stats.Icons))
}

func (p *Prometheus) OnRenderStart(context.Context, string, string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, variant, format string, size int, _ time.Duration, err error) {
	p.renders.WithLabelValues(variant, format, result(err)).Inc()
	if err == nil {
		p.renderBytes.WithLabelValues(variant, format).Set(float64(size))
	}
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, _ int) {
	p.cacheOps.WithLabelValues(keyType, "set").Inc()
}

func (p *Prometheus) OnCacheError(_ context.Context, keyType string, _ error) {
	p.cacheOps.WithLabelValues(keyType, "error").Inc()
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.requestTime.WithLabelValues(method, route).Observe(d.Seconds())
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
