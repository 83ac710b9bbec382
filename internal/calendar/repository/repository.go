package repository

import (
	"time"

	"tabsy-backend/internal/calendar/domain"
)

// CalendarEventRepository is the persisted cache of externally sourced
// calendar events, keyed by owner and provider event ID.
type CalendarEventRepository interface {
	// FindByUserID returns all cached events for a user, ordered by start
	// time ascending.
	FindByUserID(userID string) ([]*domain.CalendarEvent, error)

	// FindByDateRange returns cached events whose start time falls inside
	// [start, end], ordered by start time ascending.
	FindByDateRange(userID string, start, end time.Time) ([]*domain.CalendarEvent, error)

	// ReplaceAll deletes every cached event for the user and inserts the
	// given set, atomically.
	ReplaceAll(userID string, events []*domain.CalendarEvent) error
}
