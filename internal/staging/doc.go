// Package staging manages per-run scratch directories.
//
// Every conversion run gets its own uniquely named directory under the
// staging root, guarded by a flock sidecar so concurrent runs on the same
// host can never share scratch space. Close releases the lock and removes
// the directory; callers defer it so cleanup happens on every exit path.
// CleanStale sweeps directories abandoned by crashed runs, skipping any
// whose lock is still held.
package staging
