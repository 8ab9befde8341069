// Package notify wraps the OS file notification primitive behind a small
// capability interface: subscribe a directory, read a blocking batch of
// raw events, release. Callers correlate events back to directories via
// the opaque watch handle.
package notify

// Handle identifies one active directory subscription. Values are
// assigned by the notification backend and are meaningless to callers
// beyond equality.
type Handle int32

// Mask is a bit-set of event classes carried by a raw event. A single
// event can report several classes at once.
type Mask uint32

const (
	MaskCreate Mask = 1 << iota
	MaskModify
	MaskDelete
	MaskMovedTo
	MaskMovedFrom
	MaskCloseWrite
)

func (m Mask) Has(bit Mask) bool {
	return m&bit != 0
}

// RawEvent is a single notification as delivered by the backend. Name is
// relative to the watched directory and may be empty for events on the
// directory itself.
type RawEvent struct {
	Handle Handle
	Mask   Mask
	Name   string
}

// Notifier is the notification capability. Implementations are not safe
// for concurrent use; the monitor owns the Read/Close side and the
// registry owns subscriptions, all on one control flow.
//
// Read blocks for at most the configured poll timeout and returns the
// batch of events that arrived, which may be empty. An error from Read
// means the capability itself has failed.
type Notifier interface {
	AddWatch(path string) (Handle, error)
	RemoveWatch(handle Handle) error
	Read() ([]RawEvent, error)
	Close() error
}
