package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"musicflow/internal/filesystem"
	"musicflow/internal/handlers"
	"musicflow/internal/ingest"
	"musicflow/internal/library"
	"musicflow/internal/logging"
	"musicflow/internal/memory"
	"musicflow/internal/metadata"
	"musicflow/internal/metrics"
	"musicflow/internal/middleware"
	"musicflow/internal/search"
	"musicflow/internal/startup"
	"musicflow/internal/stats"
)

// statsProvider bridges the library, tracker, and index to the metrics
// collector.
type statsProvider struct {
	manager *library.Manager
	tracker *stats.Tracker
	index   *search.Index
}

func (p *statsProvider) GetStats() metrics.Stats {
	playlists, songs := p.manager.Counts()
	tracked, recent := p.tracker.Counts()
	return metrics.Stats{
		TotalPlaylists: playlists,
		TotalSongs:     songs,
		TrackedSongs:   tracked,
		RecentlyPlayed: recent,
		IndexTokens:    p.index.Tokens(),
		IndexLocations: p.index.Locations(),
	}
}

func main() {
	startTime := time.Now()

	// Configure GOMEMLIMIT before anything allocates
	memory.ConfigureFromEnv()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Filesystem instrumentation: map paths to volume labels and route
	// retry observations into Prometheus.
	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(map[string]string{
		config.DataDir:   "data",
		config.UploadDir: "uploads",
	}))
	filesystem.SetObserver(metrics.NewFilesystemObserver())

	if config.MetricsEnabled {
		metrics.InitializeMetrics()
		metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
	}

	// Load the library and build the search index
	libStart := time.Now()
	store := library.NewStore(config.DataDir)
	index := search.NewIndex()
	manager := library.NewManager(store, index, config.UploadDir)
	playlists, songs := manager.Counts()
	startup.LogLibraryInit(playlists, songs, time.Since(libStart))

	// Load play history
	tracker := stats.NewTracker(store, manager)
	tracked, recent := tracker.Counts()
	startup.LogStatsInit(tracked, recent)

	// Upload pipeline
	ingestor := ingest.NewIngestor(manager, metadata.NewFileExtractor(), config.UploadDir)

	// Initialize handlers and router
	h := handlers.New(manager, tracker, ingestor, config)
	router := h.Router()

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogStaticFiles, config.LogHealthChecks)

	// Apply metrics middleware
	var handler http.Handler = router
	if config.MetricsEnabled {
		handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)
	}

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler = middleware.Logger(loggingConfig)(handler)

	// Apply compression middleware
	handler = middleware.Compression(middleware.DefaultCompressionConfig())(handler)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Metrics server on its own port, with a gauge collector polling
	// library and index stats.
	var metricsSrv *http.Server
	var collector *metrics.Collector
	if config.MetricsEnabled {
		collector = metrics.NewCollector(&statsProvider{
			manager: manager,
			tracker: tracker,
			index:   index,
		}, 15*time.Second)
		collector.Start()

		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:        ":" + config.MetricsPort,
			Handler:     metricsMux,
			ReadTimeout: 15 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != http.ErrServerClosed {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, collector)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func handleShutdown(srv, metricsSrv *http.Server, collector *metrics.Collector) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if collector != nil {
		startup.LogShutdownStep("Stopping stats collector")
		collector.Stop()
		startup.LogShutdownStepComplete("Stats collector stopped")
	}

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
