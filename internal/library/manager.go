package library

import (
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"musicflow/internal/filesystem"
	"musicflow/internal/logging"
)

// Manager performs all structural mutations to the Library.
//
// The in-memory document is authoritative between process starts. Every
// mutation follows the same cycle: clone, mutate the clone, persist it,
// swap it in, rebuild the search index. The mutex serializes writers so
// concurrent requests cannot lose updates; the clone-and-swap means a
// failed persist leaves both memory and disk untouched.
type Manager struct {
	mu        sync.RWMutex
	store     *Store
	search    SearchProvider
	library   *Library
	uploadDir string
	retry     filesystem.RetryConfig

	// lastID guarantees unique millisecond-timestamp playlist ids even
	// when two playlists are created within the same millisecond.
	lastID int64
}

// NewManager loads the Library from the store and builds the initial
// search index.
func NewManager(store *Store, search SearchProvider, uploadDir string) *Manager {
	m := &Manager{
		store:     store,
		search:    search,
		library:   store.LoadLibrary(),
		uploadDir: uploadDir,
		retry:     filesystem.DefaultRetryConfig(),
	}
	m.search.Rebuild(m.library)
	return m
}

// Snapshot returns a deep copy of the current Library for read-only use.
func (m *Manager) Snapshot() *Library {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.library.Clone()
}

// CurrentPlaylistID returns the id of the active playlist.
func (m *Manager) CurrentPlaylistID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.library.CurrentPlaylist
}

// Songs returns the songs of the given playlist in order. An empty id
// selects the current playlist. An unknown id yields an empty list, not
// an error.
func (m *Manager) Songs(playlistID string) []Song {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if playlistID == "" {
		playlistID = m.library.CurrentPlaylist
	}

	p := m.library.Find(playlistID)
	if p == nil {
		return []Song{}
	}

	songs := make([]Song, len(p.Songs))
	copy(songs, p.Songs)
	return songs
}

// CreatePlaylist appends a new empty playlist and makes no change to the
// current-playlist pointer.
func (m *Manager) CreatePlaylist(name string) (Playlist, error) {
	if name == "" {
		return Playlist{}, &ValidationError{Message: "Playlist name required"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	playlist := Playlist{ID: m.newPlaylistID(), Name: name, Songs: []Song{}}

	next := m.library.Clone()
	next.Playlists = append(next.Playlists, playlist)

	if err := m.commit(next); err != nil {
		return Playlist{}, err
	}

	logging.Info("Created playlist %q (id %s)", name, playlist.ID)
	return playlist, nil
}

// DeletePlaylist removes a playlist. The default playlist cannot be
// deleted. If the deleted playlist was current, the pointer falls back to
// the first remaining playlist; if the collection empties, the default
// playlist is recreated so the Library is never left unusable.
func (m *Manager) DeletePlaylist(id string) error {
	if id == DefaultPlaylistID {
		return &ValidationError{Message: "Cannot delete the default playlist"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.library.Find(id) == nil {
		return &NotFoundError{Resource: "playlist", ID: id}
	}

	next := m.library.Clone()
	for i := range next.Playlists {
		if next.Playlists[i].ID == id {
			next.Playlists = append(next.Playlists[:i], next.Playlists[i+1:]...)
			break
		}
	}

	if len(next.Playlists) == 0 {
		next.Playlists = DefaultLibrary().Playlists
	}
	if next.CurrentPlaylist == id {
		next.CurrentPlaylist = next.Playlists[0].ID
	}

	if err := m.commit(next); err != nil {
		return err
	}

	logging.Info("Deleted playlist %s", id)
	return nil
}

// SetCurrentPlaylist switches the active playlist.
func (m *Manager) SetCurrentPlaylist(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.library.Find(id) == nil {
		return &NotFoundError{Resource: "playlist", ID: id}
	}

	next := m.library.Clone()
	next.CurrentPlaylist = id

	return m.commit(next)
}

// InsertSong adds a song to a playlist. An empty playlistID selects the
// current playlist. position is 1-based; values inside [1, len+1] insert
// at that position, anything else (including 0 for "unspecified") appends.
// The silent fallback-to-append is deliberate: the API treats a bad
// position as "no position".
func (m *Manager) InsertSong(playlistID string, song Song, position int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if playlistID == "" {
		playlistID = m.library.CurrentPlaylist
	}

	if m.library.Find(playlistID) == nil {
		return &NotFoundError{Resource: "playlist", ID: playlistID}
	}

	next := m.library.Clone()
	p := next.Find(playlistID)

	if position >= 1 && position <= len(p.Songs)+1 {
		idx := position - 1
		p.Songs = append(p.Songs, Song{})
		copy(p.Songs[idx+1:], p.Songs[idx:])
		p.Songs[idx] = song
	} else {
		p.Songs = append(p.Songs, song)
	}

	if err := m.commit(next); err != nil {
		return err
	}

	logging.Info("Added song %q to playlist %s", song.Title, playlistID)
	return nil
}

// DeleteSong removes the song at the given 0-based index and deletes its
// backing audio file. File removal failure is logged but does not fail
// the operation; the metadata deletion is what matters.
func (m *Manager) DeleteSong(playlistID string, index int) (Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.library.Find(playlistID)
	if p == nil {
		return Song{}, &NotFoundError{Resource: "playlist", ID: playlistID}
	}
	if index < 0 || index >= len(p.Songs) {
		return Song{}, &ValidationError{Message: "Invalid playlist or index"}
	}

	removed := p.Songs[index]

	next := m.library.Clone()
	np := next.Find(playlistID)
	np.Songs = append(np.Songs[:index], np.Songs[index+1:]...)

	if err := m.commit(next); err != nil {
		return Song{}, err
	}

	if removed.Filename != "" {
		path := filepath.Join(m.uploadDir, removed.Filename)
		if err := filesystem.Remove(path, m.retry); err != nil {
			logging.Warn("Failed to remove audio file %s: %v", path, err)
		}
	}

	logging.Info("Deleted song %q from playlist %s", removed.Title, playlistID)
	return removed, nil
}

// Search delegates to the search index.
func (m *Manager) Search(query string) []SongMatch {
	return m.search.Query(query)
}

// AllSongs returns every song across all playlists in playlist order.
func (m *Manager) AllSongs() []Song {
	m.mu.RLock()
	defer m.mu.RUnlock()

	songs := make([]Song, 0, m.library.TotalSongs())
	for i := range m.library.Playlists {
		songs = append(songs, m.library.Playlists[i].Songs...)
	}
	return songs
}

// FindSong looks a song up by filename across all playlists.
func (m *Manager) FindSong(filename string) (Song, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.library.Playlists {
		for _, s := range m.library.Playlists[i].Songs {
			if s.Filename == filename {
				return s, true
			}
		}
	}
	return Song{}, false
}

// Counts returns the number of playlists and total songs.
func (m *Manager) Counts() (playlists, songs int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.library.Playlists), m.library.TotalSongs()
}

// commit persists the mutated clone and, on success, swaps it in and
// rebuilds the search index. Callers must hold the write lock.
func (m *Manager) commit(next *Library) error {
	if err := m.store.SaveLibrary(next); err != nil {
		logging.Error("Failed to persist library: %v", err)
		return err
	}
	m.library = next
	m.search.Rebuild(m.library)
	return nil
}

// newPlaylistID allocates a millisecond-timestamp id, bumped monotonically
// on same-millisecond collisions. Callers must hold the write lock.
func (m *Manager) newPlaylistID() string {
	now := time.Now().UnixMilli()
	if now <= m.lastID {
		now = m.lastID + 1
	}
	m.lastID = now
	return strconv.FormatInt(now, 10)
}
