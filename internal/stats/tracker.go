package stats

import (
	"sort"
	"sync"

	"musicflow/internal/library"
	"musicflow/internal/logging"
	"musicflow/internal/metrics"
)

// LibraryView is the read-only slice of the library the tracker needs to
// join play history back to song metadata.
type LibraryView interface {
	AllSongs() []library.Song
	FindSong(filename string) (library.Song, bool)
}

// PlayedSong is a song annotated with its play count.
type PlayedSong struct {
	library.Song
	Plays int `json:"plays"`
}

// Tracker records plays and answers history queries. Counts key on the
// stored filename, which is unique per upload, so history survives songs
// being moved between playlists.
type Tracker struct {
	mu    sync.Mutex
	store *library.Store
	view  LibraryView
	stats *library.PlayStats
}

// NewTracker loads persisted play history from the store.
func NewTracker(store *library.Store, view LibraryView) *Tracker {
	return &Tracker{
		store: store,
		view:  view,
		stats: store.LoadStats(),
	}
}

// RecordPlay increments the play count for the given filename and moves
// it to the front of the recently-played list. Filenames are not
// validated against the library; a play of a since-deleted song is still
// recorded. Returns the new count.
func (t *Tracker) RecordPlay(filename string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.stats.Clone()
	next.PlayCount[filename]++

	recents := make([]string, 0, len(next.RecentlyPlayed)+1)
	recents = append(recents, filename)
	for _, f := range next.RecentlyPlayed {
		if f != filename {
			recents = append(recents, f)
		}
	}
	if len(recents) > library.RecentlyPlayedCap {
		recents = recents[:library.RecentlyPlayedCap]
	}
	next.RecentlyPlayed = recents

	if err := t.store.SaveStats(next); err != nil {
		logging.Error("Failed to persist play stats: %v", err)
		return 0, err
	}
	t.stats = next

	metrics.PlaysRecordedTotal.Inc()

	return next.PlayCount[filename], nil
}

// PlayCount returns the recorded play count for a filename.
func (t *Tracker) PlayCount(filename string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats.PlayCount[filename]
}

// MostPlayed joins play counts against the library's full song set and
// returns up to limit played songs ordered by count, highest first.
// Ties keep library scan order. Counted filenames with no surviving
// song do not appear; their history stays on disk only.
func (t *Tracker) MostPlayed(limit int) []PlayedSong {
	t.mu.Lock()
	counts := make(map[string]int, len(t.stats.PlayCount))
	for f, c := range t.stats.PlayCount {
		counts[f] = c
	}
	t.mu.Unlock()

	played := []PlayedSong{}
	for _, song := range t.view.AllSongs() {
		if c := counts[song.Filename]; c > 0 {
			played = append(played, PlayedSong{Song: song, Plays: c})
		}
	}

	sort.SliceStable(played, func(i, j int) bool {
		return played[i].Plays > played[j].Plays
	})

	if limit > 0 && len(played) > limit {
		played = played[:limit]
	}
	return played
}

// RecentlyPlayed returns the most recent plays, newest first, joined
// back to song metadata. Plays of songs no longer in the library are
// dropped from the listing but stay in the persisted history.
func (t *Tracker) RecentlyPlayed() []library.Song {
	t.mu.Lock()
	recents := make([]string, len(t.stats.RecentlyPlayed))
	copy(recents, t.stats.RecentlyPlayed)
	t.mu.Unlock()

	songs := make([]library.Song, 0, len(recents))
	for _, f := range recents {
		if song, ok := t.view.FindSong(f); ok {
			songs = append(songs, song)
		}
	}
	return songs
}

// Counts returns the number of tracked songs and the recently-played
// list length.
func (t *Tracker) Counts() (tracked, recent int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.stats.PlayCount), len(t.stats.RecentlyPlayed)
}
