// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Ingestion metrics.
	MetricGamesIngested = "repertoire_games_ingested_total"
	MetricGamesSkipped  = "repertoire_games_skipped_total"
	MetricMovesIndexed  = "repertoire_moves_indexed_total"

	// Query metrics.
	MetricLookups   = "repertoire_lookups_total"
	MetricPositions = "repertoire_positions"

	// Snapshot metrics.
	MetricSnapshotSaves = "repertoire_snapshot_saves_total"
	MetricSnapshotLoads = "repertoire_snapshot_loads_total"

	// Cache metrics.
	MetricCacheHits   = "repertoire_cache_hits_total"
	MetricCacheMisses = "repertoire_cache_misses_total"
	MetricCacheSize   = "repertoire_cache_size"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
