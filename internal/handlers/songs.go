package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Pseudo playlist ids that route to play-history views instead of a
// literal playlist.
const (
	pseudoMostPlayed     = "most-played"
	pseudoRecentlyPlayed = "recently-played"
)

// GetSongs returns the songs of a playlist. Without a playlist id the
// current playlist is used. The pseudo-ids "most-played" and
// "recently-played" return history views. An unknown id yields an
// empty array.
func (h *Handlers) GetSongs(w http.ResponseWriter, r *http.Request) {
	playlistID := mux.Vars(r)["playlistId"]

	switch playlistID {
	case pseudoMostPlayed:
		writeJSON(w, h.tracker.MostPlayed(50))
	case pseudoRecentlyPlayed:
		writeJSON(w, h.tracker.RecentlyPlayed())
	default:
		writeJSON(w, h.manager.Songs(playlistID))
	}
}

// DeleteSong removes the song at a 0-based index from a playlist and
// deletes its backing audio file.
func (h *Handlers) DeleteSong(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playlistID := vars["playlistId"]

	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeFailure(w, "Invalid playlist or index")
		return
	}

	removed, err := h.manager.DeleteSong(playlistID, index)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success": true,
		"song":    removed,
	})
}
