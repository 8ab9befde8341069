//go:build !linux

package notify

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// fsnotifyNotifier adapts fsnotify to the capability interface for
// platforms without raw inotify. fsnotify reports a reduced set of
// classes: renames surface as MOVED_FROM and close-after-write is not
// observable.
type fsnotifyNotifier struct {
	watcher     *fsnotify.Watcher
	pollTimeout time.Duration
	byPath      map[string]Handle
	byHandle    map[Handle]string
	nextHandle  Handle
	closed      bool
}

func New(pollTimeout time.Duration) (Notifier, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &fsnotifyNotifier{
		watcher:     watcher,
		pollTimeout: pollTimeout,
		byPath:      make(map[string]Handle),
		byHandle:    make(map[Handle]string),
	}, nil
}

func (n *fsnotifyNotifier) AddWatch(path string) (Handle, error) {
	if handle, ok := n.byPath[path]; ok {
		return handle, nil
	}

	if err := n.watcher.Add(path); err != nil {
		return 0, fmt.Errorf("watch %s: %w", path, err)
	}

	n.nextHandle++
	n.byPath[path] = n.nextHandle
	n.byHandle[n.nextHandle] = path
	return n.nextHandle, nil
}

func (n *fsnotifyNotifier) RemoveWatch(handle Handle) error {
	path, ok := n.byHandle[handle]
	if !ok {
		return nil
	}

	delete(n.byHandle, handle)
	delete(n.byPath, path)

	if err := n.watcher.Remove(path); err != nil {
		return fmt.Errorf("unwatch %s: %w", path, err)
	}

	return nil
}

// drainWindow bounds how long Read keeps collecting once the first event
// arrives, so bursts coalesce into one batch without delaying delivery by
// the full poll timeout.
const drainWindow = 10 * time.Millisecond

func (n *fsnotifyNotifier) Read() ([]RawEvent, error) {
	timeout := time.NewTimer(n.pollTimeout)
	defer timeout.Stop()

	var events []RawEvent
	var drainC <-chan time.Time
	for {
		select {
		case fsEvent, ok := <-n.watcher.Events:
			if !ok {
				return nil, errors.New("watcher closed")
			}
			if raw, ok := n.toRawEvent(fsEvent); ok {
				events = append(events, raw)
				if drainC == nil {
					drain := time.NewTimer(drainWindow)
					defer drain.Stop()
					drainC = drain.C
				}
			}

		case err, ok := <-n.watcher.Errors:
			if !ok {
				return nil, errors.New("watcher closed")
			}
			return nil, fmt.Errorf("watcher error: %w", err)

		case <-drainC:
			return events, nil

		case <-timeout.C:
			return events, nil
		}
	}
}

func (n *fsnotifyNotifier) toRawEvent(fsEvent fsnotify.Event) (RawEvent, bool) {
	dir := filepath.Dir(fsEvent.Name)
	handle, ok := n.byPath[dir]
	if !ok {
		return RawEvent{}, false
	}

	var mask Mask
	if fsEvent.Op.Has(fsnotify.Create) {
		mask |= MaskCreate
	}
	if fsEvent.Op.Has(fsnotify.Write) {
		mask |= MaskModify
	}
	if fsEvent.Op.Has(fsnotify.Remove) {
		mask |= MaskDelete
	}
	if fsEvent.Op.Has(fsnotify.Rename) {
		mask |= MaskMovedFrom
	}

	return RawEvent{
		Handle: handle,
		Mask:   mask,
		Name:   filepath.Base(fsEvent.Name),
	}, true
}

func (n *fsnotifyNotifier) Close() error {
	if n.closed {
		return nil
	}
	n.closed = true
	return n.watcher.Close()
}
