package handlers

import "net/http"

// Search returns songs whose title or artist matches the q parameter.
// A blank query returns an empty array.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.manager.Search(r.URL.Query().Get("q")))
}
