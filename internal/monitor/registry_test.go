package monitor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/notify"
	"go.uber.org/zap"
)

// fakeNotifier scripts the notification capability for tests in this
// package.
type fakeNotifier struct {
	nextHandle notify.Handle
	watched    map[notify.Handle]string
	addCalls   int
	addErr     error
	batches    [][]notify.RawEvent
	readErr    error
	closed     int
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{watched: make(map[notify.Handle]string)}
}

func (f *fakeNotifier) AddWatch(path string) (notify.Handle, error) {
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.addCalls++
	f.nextHandle++
	f.watched[f.nextHandle] = path
	return f.nextHandle, nil
}

func (f *fakeNotifier) RemoveWatch(handle notify.Handle) error {
	delete(f.watched, handle)
	return nil
}

func (f *fakeNotifier) Read() ([]notify.RawEvent, error) {
	if len(f.batches) > 0 {
		batch := f.batches[0]
		f.batches = f.batches[1:]
		return batch, nil
	}
	if f.readErr != nil {
		return nil, f.readErr
	}
	time.Sleep(time.Millisecond)
	return nil, nil
}

func (f *fakeNotifier) Close() error {
	f.closed++
	return nil
}

func newTestRegistry(t *testing.T) (*Registry, *fakeNotifier) {
	t.Helper()
	fake := newFakeNotifier()
	return NewRegistry(fake, zap.NewNop()), fake
}

func TestAddDirectoryRejectsRegularFile(t *testing.T) {
	registry, _ := newTestRegistry(t)

	file := filepath.Join(t.TempDir(), "plain.log")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := registry.AddDirectory(file)
	if !errors.Is(err, ErrNotADirectory) {
		t.Fatalf("expected ErrNotADirectory, got %v", err)
	}
	if registry.Size() != 0 {
		t.Fatalf("registry size changed on failed add: %d", registry.Size())
	}
}

func TestAddDirectoryAlreadyWatched(t *testing.T) {
	registry, fake := newTestRegistry(t)
	dir := t.TempDir()

	result, err := registry.AddDirectory(dir)
	if err != nil || result != Added {
		t.Fatalf("first add: result=%v err=%v", result, err)
	}

	result, err = registry.AddDirectory(dir)
	if err != nil || result != AlreadyWatched {
		t.Fatalf("second add: result=%v err=%v", result, err)
	}

	if fake.addCalls != 1 {
		t.Fatalf("expected one subscription, got %d", fake.addCalls)
	}
	if registry.Size() != 1 {
		t.Fatalf("expected one watch, got %d", registry.Size())
	}
}

func TestAddDirectorySubscriptionFailure(t *testing.T) {
	registry, fake := newTestRegistry(t)
	fake.addErr = errors.New("kernel said no")

	if _, err := registry.AddDirectory(t.TempDir()); err == nil {
		t.Fatal("expected subscription error")
	}
	if registry.Size() != 0 {
		t.Fatalf("registry size changed on failed subscription: %d", registry.Size())
	}
}

func TestRemoveDirectoryNotWatched(t *testing.T) {
	registry, _ := newTestRegistry(t)

	result, err := registry.RemoveDirectory(t.TempDir())
	if err != nil {
		t.Fatalf("remove of unwatched dir errored: %v", err)
	}
	if result != NotWatched {
		t.Fatalf("expected NotWatched, got %v", result)
	}
	if registry.Size() != 0 {
		t.Fatalf("registry size changed: %d", registry.Size())
	}
}

func TestRegistryBijection(t *testing.T) {
	registry, fake := newTestRegistry(t)

	dirs := []string{t.TempDir(), t.TempDir(), t.TempDir()}
	for _, dir := range dirs {
		if _, err := registry.AddDirectory(dir); err != nil {
			t.Fatalf("add %s: %v", dir, err)
		}
	}

	if _, err := registry.RemoveDirectory(dirs[1]); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := registry.AddDirectory(dirs[1]); err != nil {
		t.Fatalf("re-add: %v", err)
	}

	if registry.Size() != len(dirs) {
		t.Fatalf("expected %d watches, got %d", len(dirs), registry.Size())
	}

	seen := make(map[string]bool)
	for handle := range fake.watched {
		dir, ok := registry.Resolve(handle)
		if !ok {
			t.Fatalf("live handle %d does not resolve", handle)
		}
		if seen[dir] {
			t.Fatalf("directory %s mapped by two handles", dir)
		}
		seen[dir] = true
	}
	if len(seen) != len(dirs) {
		t.Fatalf("expected %d distinct directories, got %d", len(dirs), len(seen))
	}
}

func TestResolveStaleHandle(t *testing.T) {
	registry, fake := newTestRegistry(t)
	dir := t.TempDir()

	if _, err := registry.AddDirectory(dir); err != nil {
		t.Fatalf("add: %v", err)
	}

	var handle notify.Handle
	for h := range fake.watched {
		handle = h
	}

	if _, err := registry.RemoveDirectory(dir); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, ok := registry.Resolve(handle); ok {
		t.Fatal("stale handle must not resolve")
	}
}
