package repository

import (
	"time"

	"gorm.io/gorm"

	"tabsy-backend/internal/calendar/domain"
)

// gormCalendarEventRepository implements CalendarEventRepository using GORM
type gormCalendarEventRepository struct {
	db *gorm.DB
}

func NewCalendarEventRepository(db *gorm.DB) CalendarEventRepository {
	return &gormCalendarEventRepository{db: db}
}

func (r *gormCalendarEventRepository) FindByUserID(userID string) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	err := r.db.Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *gormCalendarEventRepository) FindByDateRange(userID string, start, end time.Time) ([]*domain.CalendarEvent, error) {
	var events []*domain.CalendarEvent
	err := r.db.Where("user_id = ? AND start_time >= ? AND start_time <= ?", userID, start, end).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

// ReplaceAll runs the delete and the inserts in one transaction so a crash
// mid-refresh cannot leave the cache half replaced.
func (r *gormCalendarEventRepository) ReplaceAll(userID string, events []*domain.CalendarEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.CalendarEvent{}).Error; err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		return tx.Create(&events).Error
	})
}
