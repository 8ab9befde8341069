package monitor

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/model"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/notify"
)

// UnknownEventType is emitted when a raw mask carries no recognized class
// bit (e.g. queue overflow or a watch-removed notice).
const UnknownEventType = "UNKNOWN"

// eventClasses is the normalized vocabulary in its declared order. Mask
// bits are tested independently because a single raw event can report
// several classes at once.
var eventClasses = []struct {
	bit  notify.Mask
	name string
}{
	{notify.MaskCreate, "CREATE"},
	{notify.MaskModify, "MODIFY"},
	{notify.MaskDelete, "DELETE"},
	{notify.MaskMovedTo, "MOVED_TO"},
	{notify.MaskMovedFrom, "MOVED_FROM"},
	{notify.MaskCloseWrite, "CLOSE_WRITE"},
}

// Translator converts raw notifications into LogEvents, resolving the
// watched directory through the registry.
type Translator struct {
	registry *Registry
	now      func() time.Time
}

func NewTranslator(registry *Registry) *Translator {
	return &Translator{
		registry: registry,
		now:      time.Now,
	}
}

// Translate builds a LogEvent for a raw notification. Events whose handle
// no longer resolves are dropped (ok=false): the watch was already
// removed. The timestamp is captured here, at translation time.
func (t *Translator) Translate(raw notify.RawEvent) (model.LogEvent, bool) {
	dir, ok := t.registry.Resolve(raw.Handle)
	if !ok {
		return model.LogEvent{}, false
	}

	return model.LogEvent{
		Timestamp: t.now(),
		Directory: dir,
		Filename:  raw.Name,
		EventType: eventType(raw.Mask),
		Size:      fileSize(filepath.Join(dir, raw.Name)),
	}, true
}

func eventType(mask notify.Mask) string {
	var classes []string
	for _, class := range eventClasses {
		if mask.Has(class.bit) {
			classes = append(classes, class.name)
		}
	}

	if len(classes) == 0 {
		return UnknownEventType
	}

	return strings.Join(classes, "|")
}

// fileSize is best-effort metadata: nil when the file is already gone or
// cannot be inspected.
func fileSize(path string) *int64 {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}

	size := info.Size()
	return &size
}
