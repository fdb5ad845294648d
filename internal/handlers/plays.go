package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RecordPlay records one play of the named file and returns the new
// count. No check that the file belongs to the library; history is
// keyed independently.
func (h *Handlers) RecordPlay(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	plays, err := h.tracker.RecordPlay(filename)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success": true,
		"plays":   plays,
	})
}

// GetPlayCount returns the recorded play count for a file, 0 if unknown.
func (h *Handlers) GetPlayCount(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	writeJSON(w, map[string]interface{}{
		"plays": h.tracker.PlayCount(filename),
	})
}
