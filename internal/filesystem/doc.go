// Package filesystem provides file operation helpers with retry logic for
// transient NFS failures.
//
// Self-hosted deployments commonly keep the data and upload directories on
// a network mount where operations can fail with ESTALE (stale file handle)
// during server-side cache invalidation. The helpers here retry such
// failures with capped exponential backoff and report attempts, successes,
// and failures through an Observer so the metrics package can export them
// without creating an import cycle.
//
// All other errors are returned immediately without retrying.
package filesystem
