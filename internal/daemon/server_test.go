package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/monitor"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/notify"
	"go.uber.org/zap"
)

type stubNotifier struct {
	next notify.Handle
}

func (s *stubNotifier) AddWatch(string) (notify.Handle, error) {
	s.next++
	return s.next, nil
}

func (s *stubNotifier) RemoveWatch(notify.Handle) error { return nil }

func (s *stubNotifier) Read() ([]notify.RawEvent, error) { return nil, nil }

func (s *stubNotifier) Close() error { return nil }

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	stub := &stubNotifier{}
	registry := monitor.NewRegistry(stub, zap.NewNop())

	dir := t.TempDir()
	if _, err := registry.AddDirectory(dir); err != nil {
		t.Fatalf("add directory: %v", err)
	}

	mon := monitor.New(registry, monitor.NewTranslator(registry), stub, nil, nil, zap.NewNop())
	return NewServer(mon, nil, 0, zap.NewNop()), dir
}

func TestStatusEndpoint(t *testing.T) {
	srv, dir := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var snap monitor.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.State != "IDLE" {
		t.Fatalf("state = %q, want IDLE", snap.State)
	}
	if len(snap.Directories) != 1 || snap.Directories[0] != dir {
		t.Fatalf("directories = %v, want [%s]", snap.Directories, dir)
	}
}

func TestEventsEndpointWithoutStore(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestEventPageClamped(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", defaultEventPage},
		{"junk", defaultEventPage},
		{"5", 5},
		{"0", defaultEventPage},
		{"-1", defaultEventPage},
		{"100000", maxEventPage},
	}

	for _, tc := range cases {
		if got := eventPage(tc.raw); got != tc.want {
			t.Errorf("eventPage(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestStopEndpointSignals(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/stop", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	select {
	case <-srv.StopCh():
	case <-time.After(time.Second):
		t.Fatal("stop was not signalled")
	}
}

func TestStopEndpointIdempotent(t *testing.T) {
	srv, _ := newTestServer(t)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/stop", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}
}
