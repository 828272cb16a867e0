// Package metrics defines the Prometheus instruments for the
// aggregation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SourceFetches counts upstream fetch attempts by source
	// (feed|benchmark|leaderboard) and outcome (ok|error).
	SourceFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modelboard_source_fetches_total",
		Help: "Upstream source fetch attempts by source and outcome.",
	}, []string{"source", "outcome"})

	// CacheRequests counts cache lookups by source and result
	// (hit|fetched|stale|error).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modelboard_cache_requests_total",
		Help: "Source cache lookups by result.",
	}, []string{"source", "result"})

	// Resolutions counts name-resolution outcomes by auxiliary dataset
	// and winning strategy (exact|variant|containment|tokens|none).
	Resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modelboard_resolutions_total",
		Help: "Name resolution outcomes by dataset and strategy.",
	}, []string{"dataset", "strategy"})

	// AggregationDuration observes end-to-end aggregation latency.
	AggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "modelboard_aggregation_duration_seconds",
		Help:    "End-to-end aggregation latency.",
		Buckets: prometheus.DefBuckets,
	})
)
