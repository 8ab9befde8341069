package sink

import (
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/model"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/repository"
)

// HistorySink persists events to the SQLite-backed store.
type HistorySink struct {
	repo *repository.EventRepository
}

func NewHistory(repo *repository.EventRepository) *HistorySink {
	return &HistorySink{repo: repo}
}

func (s *HistorySink) Emit(event model.LogEvent) error {
	return s.repo.Save(event)
}
