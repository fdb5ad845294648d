package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "musicflow_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "musicflow_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "musicflow_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Document store metrics
var (
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "musicflow_store_operations_total",
			Help: "Total number of document store operations",
		},
		[]string{"document", "operation", "status"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "musicflow_store_operation_duration_seconds",
			Help:    "Document store operation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"document", "operation"},
	)

	StoreDocumentBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "musicflow_store_document_bytes",
			Help: "Size of the persisted JSON documents in bytes",
		},
		[]string{"document"}, // "library", "stats"
	)
)

// Search index metrics
var (
	IndexRebuildsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "musicflow_index_rebuilds_total",
			Help: "Total number of search index rebuilds",
		},
	)

	IndexRebuildDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "musicflow_index_rebuild_duration_seconds",
			Help: "Duration of the last search index rebuild in seconds",
		},
	)

	IndexTokens = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "musicflow_index_tokens",
			Help: "Number of distinct tokens in the search index",
		},
	)

	IndexLocations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "musicflow_index_locations",
			Help: "Total number of location records in the search index",
		},
	)

	SearchQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "musicflow_search_queries_total",
			Help: "Total number of search queries served",
		},
	)

	SearchResultsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "musicflow_search_results_returned",
			Help:    "Number of songs returned per search query",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)
)

// Library metrics
var (
	LibraryPlaylists = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "musicflow_library_playlists",
			Help: "Number of playlists in the library",
		},
	)

	LibrarySongs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "musicflow_library_songs",
			Help: "Total number of songs across all playlists",
		},
	)
)

// Upload metrics
var (
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "musicflow_uploads_total",
			Help: "Total number of upload attempts",
		},
		[]string{"status"},
	)

	UploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "musicflow_upload_bytes",
			Help:    "Size of uploaded audio files in bytes",
			Buckets: prometheus.ExponentialBuckets(64*1024, 4, 8),
		},
	)

	UploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "musicflow_upload_duration_seconds",
			Help:    "Upload ingestion duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

// Play statistics metrics
var (
	PlaysRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "musicflow_plays_recorded_total",
			Help: "Total number of play events recorded",
		},
	)

	StatsTrackedSongs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "musicflow_stats_tracked_songs",
			Help: "Number of filenames with a recorded play count",
		},
	)

	StatsRecentlyPlayedSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "musicflow_stats_recently_played_size",
			Help: "Current length of the recently-played list",
		},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "musicflow_filesystem_operation_duration_seconds",
			Help:    "Filesystem operation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"volume", "operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "musicflow_filesystem_operation_errors_total",
			Help: "Total number of filesystem operation errors",
		},
		[]string{"volume", "operation"},
	)

	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "musicflow_filesystem_retry_attempts_total",
			Help: "Total number of filesystem retry attempts",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "musicflow_filesystem_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retry",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "musicflow_filesystem_retry_failures_total",
			Help: "Total number of filesystem operations that failed after all retries",
		},
		[]string{"operation", "volume"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "musicflow_filesystem_stale_errors_total",
			Help: "Total number of NFS stale file handle errors encountered",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "musicflow_filesystem_retry_duration_seconds",
			Help:    "Total duration of filesystem operations including retries",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		},
		[]string{"operation", "volume"},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "musicflow_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
