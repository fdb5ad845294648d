package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	// --- Document store operations (per document × operation) ---
	documents := []string{"library", "stats"}
	storeOps := []string{"load", "save"}

	for _, doc := range documents {
		for _, op := range storeOps {
			StoreOperationsTotal.WithLabelValues(doc, op, "success")
			StoreOperationsTotal.WithLabelValues(doc, op, "error")
			StoreOperationDuration.WithLabelValues(doc, op)
		}
		StoreDocumentBytes.WithLabelValues(doc)
	}

	// --- Filesystem operation metrics (per volume × operation) ---
	volumes := []string{"data", "uploads", "unknown"}
	fsOps := []string{"read", "write", "remove", "rename"}

	for _, vol := range volumes {
		for _, op := range fsOps {
			FilesystemOperationDuration.WithLabelValues(vol, op)
			FilesystemOperationErrors.WithLabelValues(vol, op)
			FilesystemRetryAttempts.WithLabelValues(op, vol)
			FilesystemRetrySuccess.WithLabelValues(op, vol)
			FilesystemRetryFailures.WithLabelValues(op, vol)
			FilesystemStaleErrors.WithLabelValues(op, vol)
			FilesystemRetryDuration.WithLabelValues(op, vol)
		}
	}

	// --- Upload outcomes ---
	uploadStatuses := []string{
		"success",
		"error_no_file",
		"error_type",
		"error_store",
		"error_playlist",
	}
	for _, status := range uploadStatuses {
		UploadsTotal.WithLabelValues(status)
	}
}
