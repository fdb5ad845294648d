// Package memory configures Go's runtime memory limit for containerized
// deployments.
//
// Unlike GOMAXPROCS, which Go detects from cgroup CPU limits automatically,
// GOMEMLIMIT must be configured explicitly or the runtime may grow the heap
// past the container limit and get OOM-killed. Call [ConfigureFromEnv] early
// in main, before significant allocations occur:
//
//	func main() {
//	    memory.ConfigureFromEnv()
//	    // ... rest of application
//	}
//
// # Environment Variables
//
//   - GOMEMLIMIT: Standard Go environment variable. If set, takes precedence
//     and no further configuration happens.
//
//   - MEMORY_LIMIT: Container memory limit in bytes, typically injected via
//     the Kubernetes Downward API (resourceFieldRef: limits.memory).
//
//   - MEMORY_RATIO: Fraction of MEMORY_LIMIT to allow for the Go heap,
//     between 0.0 and 1.0. Default is 0.85. The remainder is headroom for
//     upload buffers, goroutine stacks, and OS page cache pressure.
package memory
