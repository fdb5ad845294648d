// Package metrics defines all Prometheus metrics exported by the MusicFlow
// server and provides a periodic collector for library-level gauges.
//
// Metric families cover:
//   - HTTP request counts, durations, and in-flight gauge
//   - JSON document store operations and document sizes
//   - Search index rebuilds and query activity
//   - Uploads and recorded plays
//   - Filesystem retry behavior on network mounts
//
// All metrics are registered via promauto at package init. Call
// InitializeMetrics once at startup so every expected label combination is
// present from the first scrape.
package metrics
