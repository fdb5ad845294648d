// Package library holds the MusicFlow data model and its persistence.
//
// It provides:
//   - The Song, Playlist, Library, and PlayStats document types that are
//     serialized to the two JSON files under the data directory
//   - The error taxonomy shared by all components (validation, not-found,
//     storage, and upload errors)
//   - Store, which reads and writes the JSON documents atomically
//     (write-to-temp-then-rename) and falls back to defaults when a
//     document is missing or corrupt
//   - Manager, which performs all structural playlist mutations against an
//     in-memory copy of the Library, persists synchronously after every
//     mutation, and triggers a search index rebuild on success
//
// Mutations are serialized by the Manager's mutex, so overlapping HTTP
// requests cannot lose updates against the shared documents.
package library
