package usecase

import (
	"context"
	"time"

	"tabsy-backend/internal/calendar/domain"
)

// CalendarProvider is the boundary adapter making authenticated calls to the
// calendar provider.
type CalendarProvider interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*domain.CalendarEvent, error)
	InsertEvent(ctx context.Context, input domain.EventInput) (*domain.CalendarEvent, error)
	UpdateEvent(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.CalendarEvent, error)
}

// CalendarUsecase serves the cached calendar collection, refreshing from the
// provider when the cache is stale.
type CalendarUsecase interface {
	// GetEvents returns the owner's events, refreshing the cache first when
	// it is stale or forceRefresh is set.
	GetEvents(ctx context.Context, userID string, forceRefresh bool) ([]*domain.CalendarEvent, error)

	// RefreshCache replaces the cached window from the provider and records
	// the outcome in sync metadata. On failure the error propagates; stale
	// data is not served as a fallback.
	RefreshCache(ctx context.Context, userID string) ([]*domain.CalendarEvent, error)

	// GetEventsByDateRange returns cached events starting inside the range,
	// refreshing first if stale.
	GetEventsByDateRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.CalendarEvent, error)

	// FindFreeSlots scans the 08:00-18:00 workday of the given date for gaps
	// of at least durationMinutes.
	FindFreeSlots(ctx context.Context, userID string, date time.Time, durationMinutes int) ([]*domain.FreeSlot, error)

	// CreateEvent creates the event at the provider, then force-refreshes
	// the cache so it shows up immediately.
	CreateEvent(ctx context.Context, userID string, input domain.EventInput) (*domain.CalendarEvent, error)

	// UpdateEvent updates the event at the provider, then force-refreshes
	// the cache.
	UpdateEvent(ctx context.Context, userID, eventID string, upd domain.EventUpdate) (*domain.CalendarEvent, error)
}
