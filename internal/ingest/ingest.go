// Package ingest accepts uploaded audio files, stores them under the
// upload directory, extracts their metadata, and registers them in the
// library.
package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"musicflow/internal/filesystem"
	"musicflow/internal/library"
	"musicflow/internal/logging"
	"musicflow/internal/metadata"
	"musicflow/internal/metrics"
)

// allowedTypes is the accepted upload MIME allowlist.
var allowedTypes = map[string]bool{
	"audio/mpeg": true,
	"audio/mp3":  true,
}

// Upload describes one incoming file and its target location.
type Upload struct {
	Reader       io.Reader
	OriginalName string
	ContentType  string
	PlaylistID   string // empty selects the current playlist
	Position     int    // 1-based, 0 appends
}

// acceptableType reports whether an upload passes the MP3 allowlist.
// Browsers sometimes send a generic content type, so a .mp3 extension is
// accepted as a fallback in that case.
func acceptableType(contentType, name string) bool {
	if allowedTypes[contentType] {
		return true
	}
	if contentType == "" || contentType == "application/octet-stream" {
		return strings.EqualFold(filepath.Ext(name), ".mp3")
	}
	return false
}

// Ingestor runs the upload pipeline: validate, store, extract, register.
type Ingestor struct {
	manager   *library.Manager
	extractor metadata.Extractor
	uploadDir string
	retry     filesystem.RetryConfig

	mu     sync.Mutex
	lastTS int64
}

// NewIngestor returns an ingestor writing files into uploadDir.
func NewIngestor(manager *library.Manager, extractor metadata.Extractor, uploadDir string) *Ingestor {
	return &Ingestor{
		manager:   manager,
		extractor: extractor,
		uploadDir: uploadDir,
		retry:     filesystem.DefaultRetryConfig(),
	}
}

// Ingest stores the upload and adds it to the target playlist. On any
// failure after the file hits disk, the file is removed again so the
// upload directory never accumulates orphans.
func (ing *Ingestor) Ingest(up Upload) (library.Song, error) {
	start := time.Now()

	song, err := ing.ingest(up)

	metrics.UploadDuration.Observe(time.Since(start).Seconds())
	metrics.UploadsTotal.WithLabelValues(uploadStatus(err)).Inc()

	return song, err
}

func (ing *Ingestor) ingest(up Upload) (library.Song, error) {
	if !acceptableType(up.ContentType, up.OriginalName) {
		return library.Song{}, &library.ValidationError{
			Message: fmt.Sprintf("Only MP3 files are allowed, got %s", up.ContentType),
		}
	}

	filename := ing.uniqueName(up.OriginalName)
	path := filepath.Join(ing.uploadDir, filename)

	size, err := ing.storeFile(path, up.Reader)
	if err != nil {
		return library.Song{}, &library.UploadError{Message: "Failed to store uploaded file", Err: err}
	}
	metrics.UploadBytes.Observe(float64(size))

	info := ing.extractor.Extract(path)

	song := library.Song{
		Title:    info.Title,
		Artist:   info.Artist,
		Filename: filename,
		Duration: FormatDuration(info.Duration),
	}
	if song.Title == "" {
		song.Title = strings.TrimSuffix(up.OriginalName, filepath.Ext(up.OriginalName))
	}
	if song.Artist == "" {
		song.Artist = "Unknown Artist"
	}

	if err := ing.manager.InsertSong(up.PlaylistID, song, up.Position); err != nil {
		if rmErr := filesystem.Remove(path, ing.retry); rmErr != nil {
			logging.Warn("Failed to clean up rejected upload %s: %v", path, rmErr)
		}
		return library.Song{}, err
	}

	logging.Info("Ingested %q as %s (%d bytes, %s)", up.OriginalName, filename, size, song.Duration)
	return song, nil
}

// storeFile streams the upload to a temp file and renames it into place.
func (ing *Ingestor) storeFile(path string, r io.Reader) (int64, error) {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return 0, err
	}

	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return 0, err
	}

	if err := filesystem.Rename(tmp, path, ing.retry); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	return size, nil
}

// uniqueName prefixes the original filename with a millisecond timestamp,
// bumped on same-millisecond collisions so concurrent uploads of the
// same file never clash.
func (ing *Ingestor) uniqueName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload.mp3"
	}

	ing.mu.Lock()
	now := time.Now().UnixMilli()
	if now <= ing.lastTS {
		now = ing.lastTS + 1
	}
	ing.lastTS = now
	ing.mu.Unlock()

	return strconv.FormatInt(now, 10) + "-" + base
}

// FormatDuration renders a duration as M:SS, truncating fractional
// seconds. Durations under a second come out as "0:00".
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// uploadStatus maps an ingest outcome onto the upload metric label.
func uploadStatus(err error) string {
	switch err.(type) {
	case nil:
		return "success"
	case *library.ValidationError:
		return "error_type"
	case *library.NotFoundError:
		return "error_playlist"
	default:
		return "error_store"
	}
}
