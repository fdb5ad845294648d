// Package stats tracks playback history: per-song play counts and a
// capped most-recently-played list, persisted alongside the library.
package stats
