// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds collectors registered on a private registry, so tests can
// build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	FilterResults   prometheus.Histogram
	Reloads         *prometheus.CounterVec
	DatasetRecords  prometheus.Gauge
	Exports         *prometheus.CounterVec
	Notifications   *prometheus.CounterVec
	SelectionChange prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agri",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		FilterResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agri",
			Name:      "filter_result_records",
			Help:      "Number of records returned by market queries.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
		Reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri",
			Name:      "dataset_reloads_total",
			Help:      "Dataset reloads by outcome.",
		}, []string{"outcome"}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "agri",
			Name:      "dataset_records",
			Help:      "Records in the current dataset.",
		}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri",
			Name:      "exports_total",
			Help:      "Market exports by format.",
		}, []string{"format"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri",
			Name:      "notifications_total",
			Help:      "Notifications emitted by kind.",
		}, []string{"kind"}),
		SelectionChange: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agri",
			Name:      "demographics_selection_changes_total",
			Help:      "Accepted demographics selection changes.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.FilterResults,
		m.Reloads,
		m.DatasetRecords,
		m.Exports,
		m.Notifications,
		m.SelectionChange,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// ObserveReload records a reload outcome and, on success, the dataset size.
func (m *Metrics) ObserveReload(records int, err error) {
	if err != nil {
		m.Reloads.WithLabelValues("error").Inc()
		return
	}
	m.Reloads.WithLabelValues("ok").Inc()
	m.DatasetRecords.Set(float64(records))
}
