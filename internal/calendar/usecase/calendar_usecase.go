package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"tabsy-backend/internal/calendar/domain"
	"tabsy-backend/internal/calendar/repository"
	syncdomain "tabsy-backend/internal/sync/domain"
	syncrepo "tabsy-backend/internal/sync/repository"
	"tabsy-backend/pkg/keymutex"
)

// calendarCacheTTL is how long a synced calendar cache is considered fresh.
const calendarCacheTTL = 15 * time.Minute

// The refresh window is a rolling 30-day span anchored on the current date:
// 7 days back through 23 days ahead.
const (
	windowDaysBack  = 7
	windowDaysAhead = 23
)

// Workday bounds for free-slot search.
const (
	workdayStartHour = 8
	workdayEndHour   = 18
)

// calendarUsecase implements CalendarUsecase
type calendarUsecase struct {
	eventRepo    repository.CalendarEventRepository
	syncRepo     syncrepo.SyncMetadataRepository
	provider     CalendarProvider
	refreshLocks *keymutex.KeyedMutex
}

func NewCalendarUsecase(eventRepo repository.CalendarEventRepository, syncRepo syncrepo.SyncMetadataRepository, provider CalendarProvider, refreshLocks *keymutex.KeyedMutex) CalendarUsecase {
	return &calendarUsecase{
		eventRepo:    eventRepo,
		syncRepo:     syncRepo,
		provider:     provider,
		refreshLocks: refreshLocks,
	}
}

func (u *calendarUsecase) GetEvents(ctx context.Context, userID string, forceRefresh bool) ([]*domain.CalendarEvent, error) {
	// Serialize refresh decisions per owner so two stale readers cannot both
	// run delete-and-replace. A caller arriving while a refresh runs waits,
	// re-checks freshness and is served the just-refreshed cache.
	unlock := u.refreshLocks.Lock(userID + ":" + string(syncdomain.SyncKindCalendar))
	defer unlock()

	meta, err := u.syncRepo.Find(userID, syncdomain.SyncKindCalendar)
	if err != nil {
		return nil, err
	}

	if forceRefresh || meta.IsStale(time.Now(), calendarCacheTTL) {
		log.Printf("Refreshing calendar cache from Google Calendar API (user=%s)", userID)
		return u.refreshCache(ctx, userID)
	}

	return u.eventRepo.FindByUserID(userID)
}

func (u *calendarUsecase) RefreshCache(ctx context.Context, userID string) ([]*domain.CalendarEvent, error) {
	unlock := u.refreshLocks.Lock(userID + ":" + string(syncdomain.SyncKindCalendar))
	defer unlock()
	return u.refreshCache(ctx, userID)
}

// refreshCache fetches the rolling window in a single batched provider call,
// deduplicates by provider event ID (first occurrence wins) and atomically
// replaces the owner's cached set. The caller must hold the refresh lock.
func (u *calendarUsecase) refreshCache(ctx context.Context, userID string) ([]*domain.CalendarEvent, error) {
	events, err := u.doRefresh(ctx, userID)
	if err != nil {
		if recordErr := u.syncRepo.RecordFailure(userID, syncdomain.SyncKindCalendar, time.Now(), err.Error()); recordErr != nil {
			log.Printf("[ERROR] Failed to record calendar sync failure: %v", recordErr)
		}
		return nil, err
	}

	if err := u.syncRepo.RecordSuccess(userID, syncdomain.SyncKindCalendar, time.Now()); err != nil {
		return nil, err
	}

	log.Printf("Cached %d calendar events (user=%s)", len(events), userID)
	return events, nil
}

func (u *calendarUsecase) doRefresh(ctx context.Context, userID string) ([]*domain.CalendarEvent, error) {
	now := time.Now()
	year, month, day := now.Date()
	startOfToday := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	timeMin := startOfToday.AddDate(0, 0, -windowDaysBack)
	timeMax := startOfToday.AddDate(0, 0, windowDaysAhead+1).Add(-time.Second)

	fetched, err := u.provider.ListEvents(ctx, timeMin, timeMax)
	if err != nil {
		return nil, err
	}

	// Deduplicate by provider event ID, first occurrence wins, before the
	// keyed insert.
	seen := make(map[string]struct{}, len(fetched))
	events := make([]*domain.CalendarEvent, 0, len(fetched))
	syncedAt := time.Now()
	for _, ev := range fetched {
		if _, ok := seen[ev.GoogleEventID]; ok {
			continue
		}
		seen[ev.GoogleEventID] = struct{}{}

		ev.ID = fmt.Sprintf("%s_%s", userID, ev.GoogleEventID)
		ev.UserID = userID
		ev.LastSyncedAt = syncedAt
		ev.CreatedAt = syncedAt
		ev.UpdatedAt = syncedAt
		events = append(events, ev)
	}

	if err := u.eventRepo.ReplaceAll(userID, events); err != nil {
		return nil, err
	}
	return events, nil
}

func (u *calendarUsecase) GetEventsByDateRange(ctx context.Context, userID string, start, end time.Time) ([]*domain.CalendarEvent, error) {
	// Make sure the cache is fresh before filtering it.
	if _, err := u.GetEvents(ctx, userID, false); err != nil {
		return nil, err
	}
	return u.eventRepo.FindByDateRange(userID, start, end)
}

func (u *calendarUsecase) FindFreeSlots(ctx context.Context, userID string, date time.Time, durationMinutes int) ([]*domain.FreeSlot, error) {
	if durationMinutes <= 0 {
		durationMinutes = 30
	}

	year, month, day := date.Date()
	dayStart := time.Date(year, month, day, workdayStartHour, 0, 0, 0, date.Location())
	dayEnd := time.Date(year, month, day, workdayEndHour, 0, 0, 0, date.Location())

	events, err := u.provider.ListEvents(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return computeFreeSlots(events, dayStart, dayEnd, time.Duration(durationMinutes)*time.Minute), nil
}

// computeFreeSlots scans events (sorted by start time) for gaps of at least
// the required duration inside [dayStart, dayEnd].
func computeFreeSlots(events []*domain.CalendarEvent, dayStart, dayEnd time.Time, required time.Duration) []*domain.FreeSlot {
	slots := make([]*domain.FreeSlot, 0)
	current := dayStart

	for _, ev := range events {
		if ev.StartTime.Sub(current) >= required {
			slots = append(slots, &domain.FreeSlot{
				Start:    current,
				End:      ev.StartTime,
				Duration: int(ev.StartTime.Sub(current).Minutes()),
			})
		}
		if ev.EndTime.After(current) {
			current = ev.EndTime
		}
	}

	if dayEnd.Sub(current) >= required {
		slots = append(slots, &domain.FreeSlot{
			Start:    current,
			End:      dayEnd,
			Duration: int(dayEnd.Sub(current).Minutes()),
		})
	}

	return slots
}

func (u *calendarUsecase) CreateEvent(ctx context.Context, userID string, input domain.EventInput) (*domain.CalendarEvent, error) {
	created, err := u.provider.InsertEvent(ctx, input)
	if err != nil {
		return nil, err
	}

	// Refresh so the new event shows up immediately; the event itself was
	// created even if this fails.
	if _, err := u.RefreshCache(ctx, userID); err != nil {
		log.Printf("[WARN] Failed to refresh cache after event creation: %v", err)
	}
	return created, nil
}

func (u *calendarUsecase) UpdateEvent(ctx context.Context, userID, eventID string, upd domain.EventUpdate) (*domain.CalendarEvent, error) {
	updated, err := u.provider.UpdateEvent(ctx, eventID, upd)
	if err != nil {
		return nil, err
	}

	if _, err := u.RefreshCache(ctx, userID); err != nil {
		log.Printf("[WARN] Failed to refresh cache after event update: %v", err)
	}
	return updated, nil
}
