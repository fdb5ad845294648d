package library

// DefaultPlaylistID is the id of the built-in playlist that always exists
// and can never be deleted.
const DefaultPlaylistID = "main"

// DefaultPlaylistName is the display name given to the default playlist
// when it is created.
const DefaultPlaylistName = "My Playlist"

// RecentlyPlayedCap bounds the recently-played history.
const RecentlyPlayedCap = 50

// Song is the metadata record for one uploaded audio file. The filename is
// unique and doubles as the storage key under the upload directory.
// Songs are immutable once created; they are only ever removed.
type Song struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Filename string `json:"filename"`
	Duration string `json:"duration"` // "M:SS", seconds zero-padded
}

// Playlist is a named, ordered collection of songs. Order is meaningful:
// it is both the playback and display order.
type Playlist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Songs []Song `json:"songs"`
}

// Library is the root persisted document: all playlists plus the pointer
// to the active one. CurrentPlaylist always references an existing
// playlist id while Playlists is non-empty.
type Library struct {
	Playlists       []Playlist `json:"playlists"`
	CurrentPlaylist string     `json:"currentPlaylist"`
}

// DefaultLibrary returns the document used when nothing has been persisted
// yet (or the persisted document is unreadable): a single empty default
// playlist, selected as current.
func DefaultLibrary() *Library {
	return &Library{
		Playlists: []Playlist{
			{ID: DefaultPlaylistID, Name: DefaultPlaylistName, Songs: []Song{}},
		},
		CurrentPlaylist: DefaultPlaylistID,
	}
}

// Find returns the playlist with the given id, or nil.
func (l *Library) Find(id string) *Playlist {
	for i := range l.Playlists {
		if l.Playlists[i].ID == id {
			return &l.Playlists[i]
		}
	}
	return nil
}

// TotalSongs counts songs across all playlists.
func (l *Library) TotalSongs() int {
	total := 0
	for i := range l.Playlists {
		total += len(l.Playlists[i].Songs)
	}
	return total
}

// Clone returns a deep copy. Mutations are applied to a clone and swapped
// in only after a successful persist, so a failed write never leaves the
// in-memory document diverged from disk.
func (l *Library) Clone() *Library {
	clone := &Library{
		Playlists:       make([]Playlist, len(l.Playlists)),
		CurrentPlaylist: l.CurrentPlaylist,
	}
	for i, p := range l.Playlists {
		songs := make([]Song, len(p.Songs))
		copy(songs, p.Songs)
		clone.Playlists[i] = Playlist{ID: p.ID, Name: p.Name, Songs: songs}
	}
	return clone
}

// PlayStats is the persisted play-statistics document: per-filename play
// counters plus a bounded, deduplicated, most-recent-first history.
// Stats are keyed independently of the Library, so counts survive song
// deletion.
type PlayStats struct {
	PlayCount      map[string]int `json:"playCount"`
	RecentlyPlayed []string       `json:"recentlyPlayed"`
}

// DefaultPlayStats returns an empty statistics document.
func DefaultPlayStats() *PlayStats {
	return &PlayStats{
		PlayCount:      map[string]int{},
		RecentlyPlayed: []string{},
	}
}

// Clone returns a deep copy of the statistics document.
func (p *PlayStats) Clone() *PlayStats {
	clone := &PlayStats{
		PlayCount:      make(map[string]int, len(p.PlayCount)),
		RecentlyPlayed: make([]string, len(p.RecentlyPlayed)),
	}
	for k, v := range p.PlayCount {
		clone.PlayCount[k] = v
	}
	copy(clone.RecentlyPlayed, p.RecentlyPlayed)
	return clone
}

// SongMatch is one search result: a song plus the playlist it lives in.
// Position is the 0-based index within that playlist; it is used for
// deduplication and ordering but not exposed in API responses.
type SongMatch struct {
	Song
	PlaylistID   string `json:"playlistId"`
	PlaylistName string `json:"playlistName"`
	Position     int    `json:"-"`
}

// SearchProvider is the search index as seen by the Manager. Rebuild is
// invoked after every successful Library persist and at process start;
// the index is derived state and is never persisted itself.
type SearchProvider interface {
	Rebuild(lib *Library)
	Query(text string) []SongMatch
}
