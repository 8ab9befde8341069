//go:build !linux

package notify

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReadReturnsBeforePollTimeout(t *testing.T) {
	pollTimeout := 2 * time.Second
	n, err := New(pollTimeout)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer n.Close()

	dir := t.TempDir()
	handle, err := n.AddWatch(dir)
	if err != nil {
		t.Fatalf("add watch: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "fast.log"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	start := time.Now()
	var got *RawEvent
	for time.Since(start) < pollTimeout && got == nil {
		batch, err := n.Read()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		for _, raw := range batch {
			if raw.Handle == handle && raw.Name == "fast.log" {
				got = &raw
				break
			}
		}
	}

	if got == nil {
		t.Fatal("event never delivered")
	}
	// A queued event must come back after the drain window, not after the
	// full poll timeout.
	if elapsed := time.Since(start); elapsed >= pollTimeout/2 {
		t.Fatalf("delivery took %v, poll timeout is %v", elapsed, pollTimeout)
	}
}
