package handlers

import (
	"encoding/json"
	"net/http"

	"musicflow/internal/logging"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeFailure reports a failed operation. The status line stays 200;
// clients read the success flag.
func writeFailure(w http.ResponseWriter, message string) {
	writeJSON(w, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// writeError converts a domain error into the failure envelope.
func writeError(w http.ResponseWriter, err error) {
	logging.Debug("request failed: %v", err)
	writeFailure(w, err.Error())
}
