package model

import (
	"time"

	"gorm.io/gorm"
)

// EventRecord is the persisted form of a LogEvent.
type EventRecord struct {
	gorm.Model
	Directory  string `gorm:"not null;index"`
	Filename   string `gorm:"not null"`
	EventType  string `gorm:"not null"`
	Size       *int64
	OccurredAt time.Time `gorm:"not null;index"`
}

func NewEventRecord(event LogEvent) EventRecord {
	return EventRecord{
		Directory:  event.Directory,
		Filename:   event.Filename,
		EventType:  event.EventType,
		Size:       event.Size,
		OccurredAt: event.Timestamp,
	}
}
