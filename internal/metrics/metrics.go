// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metalwatch_feed_fetch_total",
		Help: "Feed fetches by result (ok, request_failed, malformed_response, error)",
	}, []string{"result"})

	FeedFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "metalwatch_feed_fetch_duration_seconds",
		Help:    "Latency of feed fetches",
		Buckets: prometheus.DefBuckets,
	})

	ScreenTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metalwatch_screen_transitions_total",
		Help: "Screen state transitions by screen and target state",
	}, []string{"screen", "state"})

	ActiveTickers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "metalwatch_active_tickers",
		Help: "Number of elapsed-time tickers currently scheduled",
	})
)
