package handlers

import (
	"net/http"
	"strconv"

	"musicflow/internal/ingest"
	"musicflow/internal/metrics"
)

// maxUploadSize caps multipart parsing memory, not the file size.
const maxUploadSize = 32 << 20

// UploadSong accepts one MP3 in the "audio" multipart field, optionally
// with "playlistId" and a 1-based "position". A non-numeric position is
// treated as unspecified and the song is appended.
func (h *Handlers) UploadSong(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		metrics.UploadsTotal.WithLabelValues("error_no_file").Inc()
		writeFailure(w, "No file uploaded")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error_no_file").Inc()
		writeFailure(w, "No file uploaded")
		return
	}
	defer file.Close()

	position := 0
	if p, err := strconv.Atoi(r.FormValue("position")); err == nil {
		position = p
	}

	song, err := h.ingestor.Ingest(ingest.Upload{
		Reader:       file,
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		PlaylistID:   r.FormValue("playlistId"),
		Position:     position,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success": true,
		"song":    song,
	})
}
