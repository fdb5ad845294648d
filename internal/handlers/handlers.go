package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"musicflow/internal/ingest"
	"musicflow/internal/library"
	"musicflow/internal/startup"
	"musicflow/internal/stats"
)

type Handlers struct {
	manager   *library.Manager
	tracker   *stats.Tracker
	ingestor  *ingest.Ingestor
	uploadDir string
	staticDir string
	startTime time.Time
}

func New(manager *library.Manager, tracker *stats.Tracker, ingestor *ingest.Ingestor, config *startup.Config) *Handlers {
	return &Handlers{
		manager:   manager,
		tracker:   tracker,
		ingestor:  ingestor,
		uploadDir: config.UploadDir,
		staticDir: config.StaticDir,
		startTime: time.Now(),
	}
}

// Router builds the application router with all API routes, the upload
// file server, and the static web UI.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()

	// Health and version
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/livez", h.LivenessCheck).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods(http.MethodGet)
	r.HandleFunc("/version", h.GetVersion).Methods(http.MethodGet)

	// API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/playlists", h.ListPlaylists).Methods(http.MethodGet)
	api.HandleFunc("/playlists", h.CreatePlaylist).Methods(http.MethodPost)
	api.HandleFunc("/playlists/{id}", h.DeletePlaylist).Methods(http.MethodDelete)
	api.HandleFunc("/current-playlist/{id}", h.SetCurrentPlaylist).Methods(http.MethodPut)
	api.HandleFunc("/songs", h.GetSongs).Methods(http.MethodGet)
	api.HandleFunc("/songs/{playlistId}", h.GetSongs).Methods(http.MethodGet)
	api.HandleFunc("/songs/{playlistId}/{index}", h.DeleteSong).Methods(http.MethodDelete)
	api.HandleFunc("/upload", h.UploadSong).Methods(http.MethodPost)
	api.HandleFunc("/search", h.Search).Methods(http.MethodGet)
	api.HandleFunc("/play/{filename}", h.RecordPlay).Methods(http.MethodPost)
	api.HandleFunc("/stats/{filename}", h.GetPlayCount).Methods(http.MethodGet)

	// Uploaded audio, served byte-for-byte for playback
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.uploadDir))))

	// Web UI
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(h.staticDir)))

	return r
}
