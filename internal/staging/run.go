package staging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Run is one run's exclusive scratch directory.
type Run struct {
	dir  string
	lock *flock.Flock
}

// NewRun creates a uniquely named scratch directory under root and takes
// its lock. The directory name doubles as the run identifier.
func NewRun(root string) (*Run, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("ensure staging root: %w", err)
	}
	dir := filepath.Join(root, uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}
	lock := flock.New(lockPath(dir))
	ok, err := lock.TryLock()
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("run directory %s already locked", dir)
	}
	return &Run{dir: dir, lock: lock}, nil
}

// Dir returns the scratch directory path.
func (r *Run) Dir() string { return r.dir }

// Path joins name onto the scratch directory.
func (r *Run) Path(name string) string { return filepath.Join(r.dir, name) }

// Close releases the lock and removes the directory. Safe to call more
// than once.
func (r *Run) Close() error {
	if r.lock != nil {
		_ = r.lock.Unlock()
		r.lock = nil
	}
	if r.dir == "" {
		return nil
	}
	dir := r.dir
	r.dir = ""
	_ = os.Remove(lockPath(dir))
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove run directory: %w", err)
	}
	return nil
}

func lockPath(dir string) string {
	return dir + ".lock"
}
