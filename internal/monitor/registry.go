package monitor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/notify"
	"go.uber.org/zap"
)

var ErrNotADirectory = errors.New("not a directory")

// AddResult reports the outcome of a successful AddDirectory call.
type AddResult int

const (
	Added AddResult = iota
	AlreadyWatched
)

// RemoveResult reports the outcome of a successful RemoveDirectory call.
type RemoveResult int

const (
	Removed RemoveResult = iota
	NotWatched
)

// Registry owns the bijection between watch handles and directory paths.
// Subscriptions go through the registry only, so at most one handle exists
// per directory and one directory per handle at any time. Not safe for
// concurrent use; the monitor owns it on a single control flow.
type Registry struct {
	notifier notify.Notifier
	logger   *zap.Logger
	byHandle map[notify.Handle]string
	byPath   map[string]notify.Handle
}

func NewRegistry(notifier notify.Notifier, logger *zap.Logger) *Registry {
	return &Registry{
		notifier: notifier,
		logger:   logger,
		byHandle: make(map[notify.Handle]string),
		byPath:   make(map[string]notify.Handle),
	}
}

// AddDirectory subscribes a directory for events. Adding a directory that
// is already watched is a no-op success. Errors wrap ErrNotADirectory,
// fs.ErrPermission for rejected subscriptions, or the opaque backend
// failure.
func (r *Registry) AddDirectory(path string) (AddResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve path: %w", err)
	}

	if _, ok := r.byPath[abs]; ok {
		return AlreadyWatched, nil
	}

	info, err := os.Stat(abs)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s: %w", abs, ErrNotADirectory)
	}

	handle, err := r.notifier.AddWatch(abs)
	if err != nil {
		return 0, fmt.Errorf("failed to subscribe %s: %w", abs, err)
	}

	r.byHandle[handle] = abs
	r.byPath[abs] = handle

	r.logger.Debug("watch added",
		zap.String("dir", abs),
		zap.Int("watches", len(r.byPath)))

	return Added, nil
}

// RemoveDirectory drops the watch for a directory. Removing a directory
// that was never added returns NotWatched, not an error. The mapping is
// deleted even if the backend rejects the unsubscribe, so the bijection
// never retains a dead entry.
func (r *Registry) RemoveDirectory(path string) (RemoveResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve path: %w", err)
	}

	handle, ok := r.byPath[abs]
	if !ok {
		return NotWatched, nil
	}

	delete(r.byPath, abs)
	delete(r.byHandle, handle)

	if err := r.notifier.RemoveWatch(handle); err != nil {
		return Removed, fmt.Errorf("failed to unsubscribe %s: %w", abs, err)
	}

	r.logger.Debug("watch removed",
		zap.String("dir", abs),
		zap.Int("watches", len(r.byPath)))

	return Removed, nil
}

// Resolve maps a handle back to its directory. Unknown handles (e.g. a
// stale event racing a removal) report ok=false.
func (r *Registry) Resolve(handle notify.Handle) (string, bool) {
	dir, ok := r.byHandle[handle]
	return dir, ok
}

func (r *Registry) Size() int {
	return len(r.byPath)
}

// Directories returns a snapshot of the watched set.
func (r *Registry) Directories() []string {
	dirs := make([]string, 0, len(r.byPath))
	for dir := range r.byPath {
		dirs = append(dirs, dir)
	}
	return dirs
}

// IsPermission reports whether an add failure was an OS permission
// rejection, which callers treat as skip-and-continue.
func IsPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
