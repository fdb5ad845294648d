// Package handlers implements the HTTP API: playlist and song CRUD,
// uploads, search, play tracking, and the health/version endpoints.
//
// Domain failures (bad input, unknown playlist, rejected upload) are
// reported as {"success": false, "message": ...} with HTTP 200. Clients
// branch on the success flag, not the status code, so the status line
// stays 200 even for failed operations. Only the health probes use
// status codes to signal state.
package handlers
