// Package metadata reads ID3 tags and playback duration from uploaded
// audio files. Extraction is best-effort: a file with no tags or an
// unparseable frame stream still yields usable zero values, and the
// caller substitutes display fallbacks.
package metadata

import (
	"io"
	"os"
	"time"

	"github.com/dhowden/tag"
	mp3 "github.com/tcolgate/mp3"

	"musicflow/internal/logging"
)

// Info is the extracted metadata of one audio file. Empty Title/Artist
// and zero Duration mean the file carried no usable data.
type Info struct {
	Title    string
	Artist   string
	Duration time.Duration
}

// Extractor reads metadata from an audio file on disk.
type Extractor interface {
	Extract(path string) Info
}

// FileExtractor extracts ID3 tags and sums MP3 frame durations.
type FileExtractor struct{}

// NewFileExtractor returns the default extractor.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

// Extract opens the file and pulls tags and duration. Errors are logged
// and reported as zero values rather than returned; an untagged upload
// is normal, not exceptional.
func (e *FileExtractor) Extract(path string) Info {
	var info Info

	f, err := os.Open(path)
	if err != nil {
		logging.Warn("Cannot open %s for metadata extraction: %v", path, err)
		return info
	}
	defer f.Close()

	if m, err := tag.ReadFrom(f); err == nil {
		info.Title = m.Title()
		info.Artist = m.Artist()
	} else {
		logging.Debug("No readable tags in %s: %v", path, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		logging.Warn("Cannot rewind %s after tag read: %v", path, err)
		return info
	}
	info.Duration = frameDuration(f, path)

	return info
}

// frameDuration decodes the MP3 frame stream and sums the per-frame
// durations. Decoding stops at the first error, so a truncated file
// yields the duration of its intact prefix.
func frameDuration(r io.Reader, path string) time.Duration {
	var (
		total   time.Duration
		frame   mp3.Frame
		skipped int
	)

	d := mp3.NewDecoder(r)
	for {
		if err := d.Decode(&frame, &skipped); err != nil {
			if err != io.EOF {
				logging.Debug("Stopped decoding %s: %v", path, err)
			}
			break
		}
		total += frame.Duration()
	}
	return total
}
