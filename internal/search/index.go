package search

import (
	"strings"
	"sync"
	"time"

	"musicflow/internal/library"
	"musicflow/internal/logging"
	"musicflow/internal/metrics"
)

// Index is an inverted index from lowercase tokens to song locations.
// Tokens come from whitespace-splitting each song's title and artist.
// Queries match any token containing the query as a substring, so
// "beat" finds both "Beat" and "Heartbeat".
//
// Rebuild replaces the whole index under the write lock; Query takes the
// read lock, so searches never observe a half-built index.
type Index struct {
	mu sync.RWMutex

	// entries holds every song location in library traversal order.
	// Posting lists reference entries by position so results come back
	// in that same order regardless of which tokens matched.
	entries []library.SongMatch
	tokens  map[string][]int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{tokens: make(map[string][]int)}
}

// Rebuild discards the current index and reindexes every song in the
// library.
func (ix *Index) Rebuild(lib *library.Library) {
	start := time.Now()

	entries := make([]library.SongMatch, 0, lib.TotalSongs())
	tokens := make(map[string][]int)

	for pi := range lib.Playlists {
		p := &lib.Playlists[pi]
		for si, song := range p.Songs {
			idx := len(entries)
			entries = append(entries, library.SongMatch{
				Song:         song,
				PlaylistID:   p.ID,
				PlaylistName: p.Name,
				Position:     si,
			})
			for _, token := range tokenize(song.Title, song.Artist) {
				postings := tokens[token]
				if len(postings) > 0 && postings[len(postings)-1] == idx {
					continue
				}
				tokens[token] = append(postings, idx)
			}
		}
	}

	locations := 0
	for _, postings := range tokens {
		locations += len(postings)
	}

	ix.mu.Lock()
	ix.entries = entries
	ix.tokens = tokens
	ix.mu.Unlock()

	metrics.IndexRebuildsTotal.Inc()
	metrics.IndexRebuildDuration.Set(time.Since(start).Seconds())
	metrics.IndexTokens.Set(float64(len(tokens)))
	metrics.IndexLocations.Set(float64(locations))

	logging.Debug("Rebuilt search index: %d songs, %d tokens, %d locations in %v",
		len(entries), len(tokens), locations, time.Since(start))
}

// Query splits the text into lowercase tokens and returns every song
// with a title or artist word containing any query token as a
// substring. Results come back in library order; duplicate locations by
// (playlist, filename) collapse to the first occurrence. A blank query
// matches nothing.
func (ix *Index) Query(query string) []library.SongMatch {
	terms := strings.Fields(strings.ToLower(query))
	results := []library.SongMatch{}
	if len(terms) == 0 {
		return results
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	matched := make(map[int]bool)
	for token, postings := range ix.tokens {
		for _, term := range terms {
			if !strings.Contains(token, term) {
				continue
			}
			for _, idx := range postings {
				matched[idx] = true
			}
			break
		}
	}

	type location struct{ playlist, filename string }
	seen := make(map[location]bool)
	for idx, entry := range ix.entries {
		if !matched[idx] {
			continue
		}
		loc := location{entry.PlaylistID, entry.Filename}
		if seen[loc] {
			continue
		}
		seen[loc] = true
		results = append(results, entry)
	}

	metrics.SearchQueriesTotal.Inc()
	metrics.SearchResultsReturned.Observe(float64(len(results)))

	return results
}

// Tokens returns the number of distinct tokens in the index.
func (ix *Index) Tokens() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.tokens)
}

// Locations returns the total posting list size across all tokens.
func (ix *Index) Locations() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	n := 0
	for _, postings := range ix.tokens {
		n += len(postings)
	}
	return n
}

// tokenize lowercases and whitespace-splits the given fields.
func tokenize(fields ...string) []string {
	var tokens []string
	for _, field := range fields {
		tokens = append(tokens, strings.Fields(strings.ToLower(field))...)
	}
	return tokens
}
