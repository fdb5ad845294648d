package metadata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtractMissingFile(t *testing.T) {
	e := NewFileExtractor()

	info := e.Extract(filepath.Join(t.TempDir(), "missing.mp3"))
	if info.Title != "" || info.Artist != "" || info.Duration != 0 {
		t.Errorf("Extract(missing) = %+v, want zero values", info)
	}
}

func TestExtractUntaggedGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.mp3")
	if err := os.WriteFile(path, []byte("this is not an mp3 stream"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	e := NewFileExtractor()
	info := e.Extract(path)
	if info.Title != "" || info.Artist != "" {
		t.Errorf("garbage file produced tags: %+v", info)
	}
	if info.Duration != 0 {
		t.Errorf("garbage file produced duration %v", info.Duration)
	}
}

func TestExtractEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.mp3")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	e := NewFileExtractor()
	if info := e.Extract(path); info.Duration != 0 {
		t.Errorf("empty file produced duration %v", info.Duration)
	}
}
