package library

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadLibraryMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())

	lib := store.LoadLibrary()
	if len(lib.Playlists) != 1 || lib.Playlists[0].ID != DefaultPlaylistID {
		t.Errorf("missing file should yield the default library, got %+v", lib)
	}
	if lib.CurrentPlaylist != DefaultPlaylistID {
		t.Errorf("CurrentPlaylist = %q, want %q", lib.CurrentPlaylist, DefaultPlaylistID)
	}
}

func TestLoadLibraryCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := os.WriteFile(store.LibraryPath(), []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	lib := store.LoadLibrary()
	if len(lib.Playlists) != 1 || lib.Playlists[0].ID != DefaultPlaylistID {
		t.Errorf("corrupt file should yield the default library, got %+v", lib)
	}
}

func TestLibraryRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	lib := DefaultLibrary()
	lib.Playlists = append(lib.Playlists, Playlist{
		ID:   "1700000000000",
		Name: "Chill",
		Songs: []Song{
			{Title: "Song A", Artist: "Artist A", Filename: "1700000000000-a.mp3", Duration: "3:45"},
		},
	})
	lib.CurrentPlaylist = "1700000000000"

	if err := store.SaveLibrary(lib); err != nil {
		t.Fatalf("SaveLibrary() error = %v", err)
	}

	got := store.LoadLibrary()
	if len(got.Playlists) != 2 {
		t.Fatalf("got %d playlists, want 2", len(got.Playlists))
	}
	if got.CurrentPlaylist != "1700000000000" {
		t.Errorf("CurrentPlaylist = %q, want %q", got.CurrentPlaylist, "1700000000000")
	}
	song := got.Playlists[1].Songs[0]
	if song.Title != "Song A" || song.Duration != "3:45" {
		t.Errorf("song round trip mismatch: %+v", song)
	}
}

func TestSaveLibraryLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	if err := store.SaveLibrary(DefaultLibrary()); err != nil {
		t.Fatalf("SaveLibrary() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file %s left behind after save", e.Name())
		}
	}
}

func TestSaveLibraryHumanReadable(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.SaveLibrary(DefaultLibrary()); err != nil {
		t.Fatalf("SaveLibrary() error = %v", err)
	}

	data, err := os.ReadFile(store.LibraryPath())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Errorf("saved library is not indented:\n%s", data)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Errorf("saved library missing trailing newline")
	}
}

func TestLoadStatsMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())

	stats := store.LoadStats()
	if stats.PlayCount == nil {
		t.Fatalf("PlayCount map is nil")
	}
	if len(stats.PlayCount) != 0 || len(stats.RecentlyPlayed) != 0 {
		t.Errorf("missing file should yield empty stats, got %+v", stats)
	}
}

func TestStatsRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	stats := DefaultPlayStats()
	stats.PlayCount["a.mp3"] = 7
	stats.RecentlyPlayed = []string{"a.mp3", "b.mp3"}

	if err := store.SaveStats(stats); err != nil {
		t.Fatalf("SaveStats() error = %v", err)
	}

	got := store.LoadStats()
	if got.PlayCount["a.mp3"] != 7 {
		t.Errorf("PlayCount[a.mp3] = %d, want 7", got.PlayCount["a.mp3"])
	}
	if len(got.RecentlyPlayed) != 2 || got.RecentlyPlayed[0] != "a.mp3" {
		t.Errorf("RecentlyPlayed = %v", got.RecentlyPlayed)
	}
}

func TestLoadStatsRepairsNilMap(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := os.WriteFile(store.StatsPath(), []byte(`{"recentlyPlayed":[]}`), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	stats := store.LoadStats()
	if stats.PlayCount == nil {
		t.Errorf("PlayCount map not repaired after load")
	}
}

func TestStorePaths(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	if got := store.LibraryPath(); got != filepath.Join(dir, "playlists.json") {
		t.Errorf("LibraryPath() = %q", got)
	}
	if got := store.StatsPath(); got != filepath.Join(dir, "stats.json") {
		t.Errorf("StatsPath() = %q", got)
	}
}
