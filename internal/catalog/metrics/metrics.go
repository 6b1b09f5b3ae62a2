// Package metrics holds the Prometheus collectors for the sync
// pipeline. Collectors live at package level so handlers stay freely
// re-constructible in tests without double registration.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsProcessed counts normalization outcomes per batch record.
	// outcome: accepted | rejected | skipped
	RecordsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_sync_records_total",
			Help: "Total number of raw records processed by the normalizer",
		},
		[]string{"outcome"},
	)

	// CoercionFailures counts recoverable per-field parse failures.
	CoercionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_sync_coercion_failures_total",
			Help: "Total number of field values that failed to parse and were defaulted",
		},
		[]string{"field"},
	)

	// UpsertsTotal counts store upserts by result.
	UpsertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_store_upserts_total",
			Help: "Total number of stock upserts by result",
		},
		[]string{"result"},
	)

	// SyncDuration observes end-to-end batch sync latency.
	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_sync_batch_duration_seconds",
			Help:    "Duration of full batch sync runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// SearchesTotal counts similarity searches by cache outcome.
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_similarity_searches_total",
			Help: "Total number of similarity searches by query-embedding cache outcome",
		},
		[]string{"cache"},
	)
)
