// Package sink provides the event output destinations: console, an
// append-only JSON-lines file, and the persisted history store.
package sink

import "github.com/kushkukrejapq/Ubuntu-hooks/internal/model"

type Sink interface {
	Emit(event model.LogEvent) error
}
