package sink

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/model"
)

// FileSink appends one JSON record per line. The file is opened and
// closed around every write, so a crash never leaves more than the
// platform's partial append behind and the file stays usable by external
// tail readers.
type FileSink struct {
	path string
}

func NewFile(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Emit(event model.LogEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append event: %w", err)
	}

	return f.Close()
}
