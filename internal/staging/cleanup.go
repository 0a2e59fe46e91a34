package staging

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"comicconv/internal/logging"
)

// CleanStaleResult contains the outcome of a stale directory sweep.
type CleanStaleResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs a directory path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// CleanStale removes run directories older than maxAge whose lock is no
// longer held. Directories belonging to live runs are left alone.
func CleanStale(root string, maxAge time.Duration, logger *slog.Logger) CleanStaleResult {
	result := CleanStaleResult{}
	if logger == nil {
		logger = logging.NewNop()
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: root, Error: err})
		}
		return result
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dir, Error: err})
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		lock := flock.New(lockPath(dir))
		held, err := lock.TryLock()
		if err != nil || !held {
			// A live run still owns this directory.
			continue
		}
		_ = lock.Unlock()

		_ = os.Remove(lockPath(dir))
		if err := os.RemoveAll(dir); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dir, Error: err})
			logger.Warn("failed to remove stale run directory",
				logging.String("path", dir),
				logging.Error(err),
			)
			continue
		}
		result.Removed = append(result.Removed, dir)
		logger.Info("removed stale run directory",
			logging.String("path", dir),
			logging.Duration("age", time.Since(info.ModTime())),
		)
	}
	return result
}
