package model

import (
	"path/filepath"
	"time"
)

// LogEvent is one observed file-lifecycle occurrence in a watched
// directory. Instances are built once by the translator and never mutated.
type LogEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Directory string    `json:"directory"`
	Filename  string    `json:"filename"`
	EventType string    `json:"event_type"`
	Size      *int64    `json:"size,omitempty"`
}

// Path returns the absolute path of the affected file.
func (e LogEvent) Path() string {
	return filepath.Join(e.Directory, e.Filename)
}
