package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/model"
)

// ConsoleSink prints one line per event in terse mode, or the full
// pretty-printed record in verbose mode.
type ConsoleSink struct {
	out     io.Writer
	verbose bool
}

func NewConsole(out io.Writer, verbose bool) *ConsoleSink {
	return &ConsoleSink{
		out:     out,
		verbose: verbose,
	}
}

func (s *ConsoleSink) Emit(event model.LogEvent) error {
	if !s.verbose {
		_, err := fmt.Fprintf(s.out, "%s - %s - %s\n",
			event.Timestamp.Format(time.RFC3339), event.EventType, event.Path())
		return err
	}

	data, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	_, err = fmt.Fprintf(s.out, "LOG EVENT: %s\n", data)
	return err
}
