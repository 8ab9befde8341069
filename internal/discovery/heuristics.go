package discovery

import (
	"os"
	"strings"
)

var logExtensions = []string{
	".log", ".txt", ".out", ".err", ".access", ".error", ".debug", ".info",
}

var logNameKeywords = []string{"log", "access", "error", "debug", "audit"}

// LooksLikeLogFile reports whether a file name is plausibly a log, either
// by extension or by a well-known substring in its lower-cased name.
func LooksLikeLogFile(name string) bool {
	for _, ext := range logExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	lower := strings.ToLower(name)
	for _, keyword := range logNameKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

// ContainsLogFiles reports whether a directory has at least one immediate
// entry that looks like a log file. An unreadable directory counts as not
// containing any.
func ContainsLogFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if LooksLikeLogFile(entry.Name()) {
			return true
		}
	}

	return false
}
