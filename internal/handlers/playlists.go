package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// ListPlaylists returns the whole library document: every playlist and
// the current-playlist pointer.
func (h *Handlers) ListPlaylists(w http.ResponseWriter, _ *http.Request) {
	lib := h.manager.Snapshot()
	writeJSON(w, map[string]interface{}{
		"playlists":       lib.Playlists,
		"currentPlaylist": lib.CurrentPlaylist,
	})
}

// CreatePlaylist creates a new empty playlist from a {name} body.
func (h *Handlers) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailure(w, "Invalid request body")
		return
	}

	playlist, err := h.manager.CreatePlaylist(body.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success":  true,
		"playlist": playlist,
	})
}

// DeletePlaylist removes a playlist by id.
func (h *Handlers) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.manager.DeletePlaylist(id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{"success": true})
}

// SetCurrentPlaylist switches the active playlist.
func (h *Handlers) SetCurrentPlaylist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.manager.SetCurrentPlaylist(id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{"success": true})
}
