// Package metrics defines the Prometheus collectors shared by the store
// engine, journal, and HTTP layer. Collectors are registered on the
// default registry and exposed through the server's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trackedkv_mutations_total",
		Help: "Total number of tracked mutations applied, by operation",
	}, []string{"op"})

	RevertedEntriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trackedkv_reverted_entries_total",
		Help: "Total number of history records undone by revert calls",
	})

	HistorySize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trackedkv_history_size",
		Help: "Current number of records in the change history",
	})

	KeysLive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "trackedkv_keys_live",
		Help: "Current number of live keys in the store",
	})

	JournalFlushesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trackedkv_journal_flushes_total",
		Help: "Total number of journal buffer flushes to disk",
	})

	JournalReplayedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trackedkv_journal_replayed_records_total",
		Help: "Number of journal records replayed at startup",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trackedkv_http_request_duration_seconds",
		Help:    "Duration of HTTP API requests",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}, []string{"route"})
)
