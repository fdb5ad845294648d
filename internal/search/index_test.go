package search

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"musicflow/internal/library"
	"musicflow/internal/metrics"
)

func testLibrary() *library.Library {
	return &library.Library{
		Playlists: []library.Playlist{
			{
				ID:   "main",
				Name: "My Playlist",
				Songs: []library.Song{
					{Title: "Midnight City", Artist: "M83", Filename: "1-midnight.mp3", Duration: "4:03"},
					{Title: "City Lights", Artist: "The Night Owls", Filename: "2-lights.mp3", Duration: "3:21"},
				},
			},
			{
				ID:   "1700000000000",
				Name: "Late Night",
				Songs: []library.Song{
					{Title: "Nightcall", Artist: "Kavinsky", Filename: "3-nightcall.mp3", Duration: "4:17"},
					{Title: "Midnight City", Artist: "M83", Filename: "1-midnight.mp3", Duration: "4:03"},
				},
			},
		},
		CurrentPlaylist: "main",
	}
}

func builtIndex() *Index {
	ix := NewIndex()
	ix.Rebuild(testLibrary())
	return ix
}

func TestQueryMatchesTitleAndArtist(t *testing.T) {
	ix := builtIndex()

	tests := []struct {
		name      string
		query     string
		wantFiles []string
	}{
		{"title token", "city", []string{"1-midnight.mp3", "2-lights.mp3", "1-midnight.mp3"}},
		{"artist token", "m83", []string{"1-midnight.mp3", "1-midnight.mp3"}},
		{"substring inside token", "night", []string{"1-midnight.mp3", "2-lights.mp3", "3-nightcall.mp3", "1-midnight.mp3"}},
		{"case insensitive", "CITY", []string{"1-midnight.mp3", "2-lights.mp3", "1-midnight.mp3"}},
		{"multiple tokens union", "kavinsky m83", []string{"1-midnight.mp3", "3-nightcall.mp3", "1-midnight.mp3"}},
		{"no match", "zzz", nil},
		{"empty query", "", nil},
		{"whitespace query", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ix.Query(tt.query)
			if len(got) != len(tt.wantFiles) {
				t.Fatalf("Query(%q) returned %d results, want %d: %+v", tt.query, len(got), len(tt.wantFiles), got)
			}
			for i, want := range tt.wantFiles {
				if got[i].Filename != want {
					t.Errorf("Query(%q)[%d].Filename = %q, want %q", tt.query, i, got[i].Filename, want)
				}
			}
		})
	}
}

func TestQueryCarriesPlaylistContext(t *testing.T) {
	ix := builtIndex()

	results := ix.Query("kavinsky")
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.PlaylistID != "1700000000000" || r.PlaylistName != "Late Night" {
		t.Errorf("playlist context = (%q, %q), want (1700000000000, Late Night)", r.PlaylistID, r.PlaylistName)
	}
	if r.Title != "Nightcall" || r.Duration != "4:17" {
		t.Errorf("song fields not carried through: %+v", r)
	}
}

func TestQueryDeduplicatesWithinPlaylist(t *testing.T) {
	lib := testLibrary()
	// Same song twice in one playlist collapses to a single result.
	lib.Playlists[0].Songs = append(lib.Playlists[0].Songs, lib.Playlists[0].Songs[0])

	ix := NewIndex()
	ix.Rebuild(lib)

	results := ix.Query("m83")
	count := 0
	for _, r := range results {
		if r.PlaylistID == "main" && r.Filename == "1-midnight.mp3" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("duplicate location appeared %d times, want 1", count)
	}
}

func TestQuerySameSongAcrossPlaylists(t *testing.T) {
	ix := builtIndex()

	// The same file in two playlists is two distinct results.
	results := ix.Query("m83")
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].PlaylistID != "main" || results[1].PlaylistID != "1700000000000" {
		t.Errorf("results out of library order: %+v", results)
	}
}

func TestRebuildReplacesIndex(t *testing.T) {
	ix := builtIndex()

	if got := ix.Query("m83"); len(got) == 0 {
		t.Fatalf("expected matches before rebuild")
	}

	ix.Rebuild(library.DefaultLibrary())
	if got := ix.Query("m83"); len(got) != 0 {
		t.Errorf("stale results after rebuild: %+v", got)
	}
	if ix.Tokens() != 0 || ix.Locations() != 0 {
		t.Errorf("counts after empty rebuild = (%d, %d), want (0, 0)", ix.Tokens(), ix.Locations())
	}
}

func TestTokensAndLocations(t *testing.T) {
	ix := builtIndex()

	if ix.Tokens() == 0 {
		t.Errorf("Tokens() = 0 after indexing songs")
	}
	if ix.Locations() < ix.Tokens() {
		t.Errorf("Locations() = %d less than Tokens() = %d", ix.Locations(), ix.Tokens())
	}
}

func TestRebuildUpdatesMetrics(t *testing.T) {
	ix := builtIndex()

	if got := testutil.ToFloat64(metrics.IndexTokens); int(got) != ix.Tokens() {
		t.Errorf("index tokens gauge = %v, want %d", got, ix.Tokens())
	}
	if got := testutil.ToFloat64(metrics.IndexLocations); int(got) != ix.Locations() {
		t.Errorf("index locations gauge = %v, want %d", got, ix.Locations())
	}
	// The duration gauge holds the elapsed time of the last rebuild.
	if got := testutil.ToFloat64(metrics.IndexRebuildDuration); got < 0 {
		t.Errorf("rebuild duration gauge = %v, want >= 0", got)
	}
}

func TestEmptyIndexQuery(t *testing.T) {
	ix := NewIndex()
	if got := ix.Query("anything"); len(got) != 0 {
		t.Errorf("empty index returned %d results", len(got))
	}
}
