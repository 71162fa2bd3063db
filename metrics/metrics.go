// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package metrics records Prometheus metrics for process queries.
package metrics

import (
	"net/http"
	"time"

	"github.com/jongio/procinfo/procutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// QueryFunc has the shape of procutil.Query.
type QueryFunc func(pid, maxPathCapacity int) (*procutil.ProcessInfo, error)

// Recorder holds the query metrics registered on one registry.
type Recorder struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder registers the query metrics on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		total: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "procinfo_query_total",
				Help: "Total number of process queries by result",
			},
			[]string{"result"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "procinfo_query_duration_seconds",
				Help:    "Duration of process queries in seconds",
				Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
			},
			[]string{"result"},
		),
	}
}

// Observe records one query that took d and ended with err.
func (r *Recorder) Observe(d time.Duration, err error) {
	label := Result(err)
	r.total.WithLabelValues(label).Inc()
	r.duration.WithLabelValues(label).Observe(d.Seconds())
}

// Wrap returns fn instrumented with r.
func (r *Recorder) Wrap(fn QueryFunc) QueryFunc {
	return func(pid, maxPathCapacity int) (*procutil.ProcessInfo, error) {
		start := time.Now()
		info, err := fn(pid, maxPathCapacity)
		r.Observe(time.Since(start), err)
		return info, err
	}
}

// Result maps a query error to its metric label: "ok", the ErrorKind name,
// or "error" for errors that carry no kind.
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	if kind, ok := procutil.KindOf(err); ok {
		return kind.String()
	}
	return "error"
}

// NewServer creates an HTTP server exposing g on /metrics and a liveness
// endpoint on /health.
func NewServer(addr string, g prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
