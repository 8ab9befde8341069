package repository

import (
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/db"
	"github.com/kushkukrejapq/Ubuntu-hooks/internal/model"
)

type EventRepository struct{}

func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

func (r *EventRepository) Save(event model.LogEvent) error {
	record := model.NewEventRecord(event)
	return db.DB.Create(&record).Error
}

func (r *EventRepository) GetRecent(limit int) ([]model.EventRecord, error) {
	var records []model.EventRecord
	result := db.DB.
		Order("occurred_at desc").
		Limit(limit).
		Find(&records)

	return records, result.Error
}

type Stats struct {
	Total       int64
	Directories int64
}

func (r *EventRepository) GetStats() (Stats, error) {
	var stats Stats
	if err := db.DB.Model(&model.EventRecord{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	if err := db.DB.Model(&model.EventRecord{}).
		Distinct("directory").
		Count(&stats.Directories).Error; err != nil {
		return stats, err
	}

	return stats, nil
}
