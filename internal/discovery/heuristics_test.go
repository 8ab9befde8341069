package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLooksLikeLogFile(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"app.log", true},
		{"output.txt", true},
		{"worker.out", true},
		{"worker.err", true},
		{"site.access", true},
		{"site.error", true},
		{"app.debug", true},
		{"app.info", true},
		{"syslog", true},
		{"ACCESS-2024", true},
		{"audit.json", true},
		{"Debug.yaml", true},
		{"notes.md", false},
		{"image.png", false},
		{"config.yaml", false},
		{"README", false},
	}

	for _, tc := range cases {
		if got := LooksLikeLogFile(tc.name); got != tc.want {
			t.Errorf("LooksLikeLogFile(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestContainsLogFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if ContainsLogFiles(dir) {
		t.Fatal("expected no log files")
	}

	if err := os.WriteFile(filepath.Join(dir, "app.log"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if !ContainsLogFiles(dir) {
		t.Fatal("expected log files to be found")
	}
}

func TestContainsLogFilesIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "logs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if ContainsLogFiles(dir) {
		t.Fatal("a directory entry must not count as a log file")
	}
}

func TestContainsLogFilesUnreadableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	if ContainsLogFiles(dir) {
		t.Fatal("unreadable directory must report false, not error")
	}
}
