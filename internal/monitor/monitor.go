// Package monitor drives the watch lifecycle: a registry of subscribed
// directories, a translator from raw notifications to log events, and the
// blocking read-translate-emit loop.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kushkukrejapq/Ubuntu-hooks/internal/model"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/notify"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/sink"
	"go.uber.org/zap"
)

type State int32

const (
	StateIdle State = iota
	StateRunning
	StateDraining
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StateDraining:
		return "DRAINING"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Filter decides whether an event is dropped before emission.
type Filter interface {
	Ignore(event model.LogEvent) bool
}

// Monitor owns the event loop. Registry mutation happens before Run on
// the same control flow; while running, only the loop touches the
// notifier. State, counters and the start time are atomics so the status
// server can read them from its own goroutine.
type Monitor struct {
	registry   *Registry
	translator *Translator
	notifier   notify.Notifier
	sinks      []sink.Sink
	filter     Filter
	logger     *zap.Logger

	state     atomic.Int32
	events    atomic.Uint64
	startedAt atomic.Int64 // unix nanos, zero until Run
	closeOnce sync.Once
}

func New(registry *Registry, translator *Translator, notifier notify.Notifier, sinks []sink.Sink, filter Filter, logger *zap.Logger) *Monitor {
	return &Monitor{
		registry:   registry,
		translator: translator,
		notifier:   notifier,
		sinks:      sinks,
		filter:     filter,
		logger:     logger,
	}
}

// Run blocks on the read-translate-emit cycle until the context is
// cancelled or the notification capability fails. Starting with zero
// watches is an error. The notification resource is released exactly once
// on every exit path.
func (m *Monitor) Run(ctx context.Context) error {
	if m.registry.Size() == 0 {
		return errors.New("no directories to monitor")
	}

	m.startedAt.Store(time.Now().UnixNano())
	m.setState(StateRunning)
	defer m.setState(StateStopped)
	defer m.release()

	m.logger.Info("monitoring started",
		zap.Int("directories", m.registry.Size()))

	for {
		// Cancellation is observed between batch reads; the read itself
		// is bounded by the notifier poll timeout.
		select {
		case <-ctx.Done():
			m.setState(StateDraining)
			m.logger.Info("monitoring stopped")
			return nil
		default:
		}

		batch, err := m.notifier.Read()
		if err != nil {
			m.setState(StateDraining)
			return fmt.Errorf("notification capability failed: %w", err)
		}

		for _, raw := range batch {
			event, ok := m.translator.Translate(raw)
			if !ok {
				continue
			}
			if m.filter != nil && m.filter.Ignore(event) {
				continue
			}
			m.emit(event)
		}
	}
}

// emit writes the event to every sink. A failing sink is logged and never
// stops monitoring; console remains the output of record.
func (m *Monitor) emit(event model.LogEvent) {
	for _, s := range m.sinks {
		if err := s.Emit(event); err != nil {
			m.logger.Warn("sink write failed",
				zap.String("file", event.Path()),
				zap.Error(err))
		}
	}

	m.events.Add(1)
}

func (m *Monitor) release() {
	m.closeOnce.Do(func() {
		if err := m.notifier.Close(); err != nil {
			m.logger.Warn("failed to release watches", zap.Error(err))
		}
	})
}

func (m *Monitor) setState(state State) {
	m.state.Store(int32(state))
}

func (m *Monitor) State() State {
	return State(m.state.Load())
}

// Snapshot is the status view served over HTTP.
type Snapshot struct {
	State       string    `json:"state"`
	Directories []string  `json:"directories"`
	Events      uint64    `json:"events"`
	StartedAt   time.Time `json:"started_at"`
}

func (m *Monitor) Snapshot() Snapshot {
	var startedAt time.Time
	if nanos := m.startedAt.Load(); nanos != 0 {
		startedAt = time.Unix(0, nanos)
	}

	return Snapshot{
		State:       m.State().String(),
		Directories: m.registry.Directories(),
		Events:      m.events.Load(),
		StartedAt:   startedAt,
	}
}
