package library

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"musicflow/internal/filesystem"
	"musicflow/internal/logging"
	"musicflow/internal/metrics"
)

// Document file names under the data directory. Both documents are
// human-readable JSON and are rewritten wholesale on every mutation.
const (
	libraryFile = "playlists.json"
	statsFile   = "stats.json"
)

// Store persists the Library and PlayStats documents as JSON files.
//
// Writes go to a temp file in the same directory followed by a rename, so
// a crash mid-write can never leave a truncated document behind. Reads
// that fail for any reason fall back to the default document; the service
// stays available and the next successful save repairs the file.
type Store struct {
	dataDir string
	retry   filesystem.RetryConfig
}

// NewStore creates a store rooted at dataDir. The directory must already
// exist and be writable; startup.LoadConfig validates that.
func NewStore(dataDir string) *Store {
	return &Store{
		dataDir: dataDir,
		retry:   filesystem.DefaultRetryConfig(),
	}
}

// LibraryPath returns the full path of the playlist-collection document.
func (s *Store) LibraryPath() string {
	return filepath.Join(s.dataDir, libraryFile)
}

// StatsPath returns the full path of the play-statistics document.
func (s *Store) StatsPath() string {
	return filepath.Join(s.dataDir, statsFile)
}

// LoadLibrary reads the playlist collection, returning the default
// document if the file is absent or unreadable.
func (s *Store) LoadLibrary() *Library {
	lib := &Library{}
	if !s.loadDocument("library", s.LibraryPath(), lib) {
		return DefaultLibrary()
	}
	if len(lib.Playlists) == 0 {
		return DefaultLibrary()
	}
	return lib
}

// SaveLibrary persists the playlist collection.
func (s *Store) SaveLibrary(lib *Library) error {
	return s.saveDocument("library", s.LibraryPath(), lib)
}

// LoadStats reads the play-statistics document, returning the default
// document if the file is absent or unreadable.
func (s *Store) LoadStats() *PlayStats {
	stats := &PlayStats{}
	if !s.loadDocument("stats", s.StatsPath(), stats) {
		return DefaultPlayStats()
	}
	if stats.PlayCount == nil {
		stats.PlayCount = map[string]int{}
	}
	if stats.RecentlyPlayed == nil {
		stats.RecentlyPlayed = []string{}
	}
	return stats
}

// SaveStats persists the play-statistics document.
func (s *Store) SaveStats(stats *PlayStats) error {
	return s.saveDocument("stats", s.StatsPath(), stats)
}

// loadDocument reads and unmarshals one document. It reports whether the
// document was usable; failures are logged, never propagated, so a
// missing or corrupt file degrades to the caller's default.
func (s *Store) loadDocument(name, path string, v interface{}) bool {
	start := time.Now()

	data, err := filesystem.ReadFile(path, s.retry)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn("Failed to read %s document at %s, using defaults: %v", name, path, err)
		}
		recordStoreOp(name, "load", start, err)
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		logging.Warn("Failed to parse %s document at %s, using defaults: %v", name, path, err)
		recordStoreOp(name, "load", start, err)
		return false
	}

	metrics.StoreDocumentBytes.WithLabelValues(name).Set(float64(len(data)))
	recordStoreOp(name, "load", start, nil)
	return true
}

// saveDocument marshals and atomically writes one document.
func (s *Store) saveDocument(name, path string, v interface{}) error {
	start := time.Now()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		recordStoreOp(name, "save", start, err)
		return &StorageError{Op: "save " + name, Err: err}
	}
	data = append(data, '\n')

	tmpPath := path + ".tmp"
	if err := filesystem.WriteFile(tmpPath, data, 0o644, s.retry); err != nil {
		recordStoreOp(name, "save", start, err)
		return &StorageError{Op: "save " + name, Err: err}
	}

	if err := filesystem.Rename(tmpPath, path, s.retry); err != nil {
		// Best-effort cleanup of the orphaned temp file
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			logging.Debug("Failed to remove temp file %s: %v", tmpPath, rmErr)
		}
		recordStoreOp(name, "save", start, err)
		return &StorageError{Op: "save " + name, Err: err}
	}

	metrics.StoreDocumentBytes.WithLabelValues(name).Set(float64(len(data)))
	recordStoreOp(name, "save", start, nil)
	return nil
}

// recordStoreOp records store operation metrics
func recordStoreOp(document, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.StoreOperationsTotal.WithLabelValues(document, operation, status).Inc()
	metrics.StoreOperationDuration.WithLabelValues(document, operation).Observe(time.Since(start).Seconds())
}
