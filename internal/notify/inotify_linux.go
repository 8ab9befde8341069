//go:build linux

package notify

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

const watchFlags = unix.IN_CREATE | unix.IN_MODIFY | unix.IN_DELETE |
	unix.IN_MOVED_TO | unix.IN_MOVED_FROM | unix.IN_CLOSE_WRITE

// inotifyNotifier reads raw inotify events from a non-blocking fd. The fd
// is polled with a timeout so the monitor can observe cancellation
// between batches.
type inotifyNotifier struct {
	fd          int
	pollTimeout time.Duration
	buf         []byte
	closed      bool
}

// New opens an inotify instance. pollTimeout bounds how long a single
// Read call blocks when no events arrive.
func New(pollTimeout time.Duration) (Notifier, error) {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify init: %w", err)
	}

	return &inotifyNotifier{
		fd:          fd,
		pollTimeout: pollTimeout,
		buf:         make([]byte, 64*1024),
	}, nil
}

func (n *inotifyNotifier) AddWatch(path string) (Handle, error) {
	wd, err := unix.InotifyAddWatch(n.fd, path, watchFlags)
	if err != nil {
		return 0, fmt.Errorf("inotify add watch %s: %w", path, err)
	}

	return Handle(wd), nil
}

func (n *inotifyNotifier) RemoveWatch(handle Handle) error {
	if _, err := unix.InotifyRmWatch(n.fd, uint32(handle)); err != nil {
		return fmt.Errorf("inotify rm watch: %w", err)
	}

	return nil
}

func (n *inotifyNotifier) Read() ([]RawEvent, error) {
	pollFds := []unix.PollFd{{Fd: int32(n.fd), Events: unix.POLLIN}}

	ready, err := unix.Poll(pollFds, int(n.pollTimeout.Milliseconds()))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return nil, nil
		}
		return nil, fmt.Errorf("inotify poll: %w", err)
	}
	if ready == 0 {
		return nil, nil
	}

	length, err := unix.Read(n.fd, n.buf)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) {
			return nil, nil
		}
		return nil, fmt.Errorf("inotify read: %w", err)
	}

	var events []RawEvent
	offset := 0
	for offset+unix.SizeofInotifyEvent <= length {
		raw := (*unix.InotifyEvent)(unsafe.Pointer(&n.buf[offset]))

		name := ""
		if raw.Len > 0 {
			start := offset + unix.SizeofInotifyEvent
			name = strings.TrimRight(string(n.buf[start:start+int(raw.Len)]), "\x00")
		}

		events = append(events, RawEvent{
			Handle: Handle(raw.Wd),
			Mask:   fromInotifyMask(raw.Mask),
			Name:   name,
		})

		offset += unix.SizeofInotifyEvent + int(raw.Len)
	}

	return events, nil
}

func (n *inotifyNotifier) Close() error {
	if n.closed {
		return nil
	}
	n.closed = true

	if err := unix.Close(n.fd); err != nil {
		return fmt.Errorf("inotify close: %w", err)
	}

	return nil
}

func fromInotifyMask(raw uint32) Mask {
	var mask Mask
	if raw&unix.IN_CREATE != 0 {
		mask |= MaskCreate
	}
	if raw&unix.IN_MODIFY != 0 {
		mask |= MaskModify
	}
	if raw&unix.IN_DELETE != 0 {
		mask |= MaskDelete
	}
	if raw&unix.IN_MOVED_TO != 0 {
		mask |= MaskMovedTo
	}
	if raw&unix.IN_MOVED_FROM != 0 {
		mask |= MaskMovedFrom
	}
	if raw&unix.IN_CLOSE_WRITE != 0 {
		mask |= MaskCloseWrite
	}
	return mask
}
