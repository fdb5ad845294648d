package metrics

import (
	"time"

	"musicflow/internal/logging"
)

// StatsProvider interface for collecting library statistics
type StatsProvider interface {
	GetStats() Stats
}

// Stats holds the current library statistics
type Stats struct {
	TotalPlaylists int
	TotalSongs     int
	TrackedSongs   int
	RecentlyPlayed int
	IndexTokens    int
	IndexLocations int
}

// Collector periodically collects and updates metrics
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()

	LibraryPlaylists.Set(float64(stats.TotalPlaylists))
	LibrarySongs.Set(float64(stats.TotalSongs))
	StatsTrackedSongs.Set(float64(stats.TrackedSongs))
	StatsRecentlyPlayedSize.Set(float64(stats.RecentlyPlayed))
	IndexTokens.Set(float64(stats.IndexTokens))
	IndexLocations.Set(float64(stats.IndexLocations))

	logging.Debug("Metrics collected: playlists=%d, songs=%d, tracked=%d, tokens=%d",
		stats.TotalPlaylists, stats.TotalSongs, stats.TrackedSongs, stats.IndexTokens)
}
