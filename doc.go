// Package main provides the entry point for the MusicFlow application.
//
// MusicFlow is a self-hosted web application for managing a personal music
// library. It supports MP3 uploads with automatic metadata extraction, named
// playlists, full-library search, and play history tracking.
//
// # Application Lifecycle
//
// The application follows a structured initialization sequence:
//
//  1. Memory Configuration: Sets GOMEMLIMIT from environment or cgroup limits
//  2. Configuration Loading: Reads environment variables and validates directories
//  3. Library Initialization: Loads playlists from disk and builds the search index
//  4. Component Initialization:
//     - Play Tracker: Loads play counts and recently-played history
//     - Ingestor: Sets up the MP3 upload and metadata extraction pipeline
//     - Metrics Collector: Gathers Prometheus metrics
//  5. HTTP Server Setup: Configures routes, middleware, and starts server
//  6. Graceful Shutdown: Handles SIGINT/SIGTERM, stops all components cleanly
//
// # Background Services
//
// The metrics collector goroutine polls library, index, and play history
// counts on an interval and publishes them as Prometheus gauges. All other
// work happens synchronously on request handlers.
//
// # Servers
//
// Two HTTP servers run when metrics are enabled: the application server on
// PORT (default 3000) and a metrics server on METRICS_PORT (default 9090)
// exposing /metrics for Prometheus scraping.
package main
