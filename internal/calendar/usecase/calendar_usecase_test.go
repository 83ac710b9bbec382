package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tabsy-backend/internal/calendar/domain"
	"tabsy-backend/internal/calendar/repository"
	syncdomain "tabsy-backend/internal/sync/domain"
	syncrepo "tabsy-backend/internal/sync/repository"
	"tabsy-backend/pkg/keymutex"
)

type fakeCalendarProvider struct {
	events    []*domain.CalendarEvent
	err       error
	listCalls int
}

func (f *fakeCalendarProvider) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*domain.CalendarEvent, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	// Hand out copies so the usecase can own the returned values.
	out := make([]*domain.CalendarEvent, len(f.events))
	for i, ev := range f.events {
		c := *ev
		out[i] = &c
	}
	return out, nil
}

func (f *fakeCalendarProvider) InsertEvent(ctx context.Context, input domain.EventInput) (*domain.CalendarEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	ev := &domain.CalendarEvent{
		GoogleEventID: "created-1",
		Title:         input.Title,
		StartTime:     input.Start,
		EndTime:       input.End,
	}
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeCalendarProvider) UpdateEvent(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.CalendarEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, ev := range f.events {
		if ev.GoogleEventID == eventID {
			if upd.Title != nil {
				ev.Title = *upd.Title
			}
			return ev, nil
		}
	}
	return nil, errors.New("event not found")
}

type calendarFixture struct {
	uc        CalendarUsecase
	provider  *fakeCalendarProvider
	eventRepo repository.CalendarEventRepository
	syncRepo  syncrepo.SyncMetadataRepository
}

func newCalendarFixture(t *testing.T) *calendarFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.AutoMigrate(&domain.CalendarEvent{}, &syncdomain.SyncMetadata{}))

	provider := &fakeCalendarProvider{}
	eventRepo := repository.NewCalendarEventRepository(db)
	syncRepo := syncrepo.NewSyncMetadataRepository(db)

	return &calendarFixture{
		uc:        NewCalendarUsecase(eventRepo, syncRepo, provider, keymutex.New()),
		provider:  provider,
		eventRepo: eventRepo,
		syncRepo:  syncRepo,
	}
}

func hourEvent(id string, startIn time.Duration) *domain.CalendarEvent {
	start := time.Now().Add(startIn)
	return &domain.CalendarEvent{
		GoogleEventID: id,
		Title:         "Event " + id,
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
	}
}

func TestGetEventsRefreshesWhenNeverSynced(t *testing.T) {
	f := newCalendarFixture(t)
	f.provider.events = []*domain.CalendarEvent{hourEvent("g1", time.Hour), hourEvent("g2", 2*time.Hour)}

	events, err := f.uc.GetEvents(context.Background(), "user-1", false)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 1, f.provider.listCalls)

	// Cached rows carry the composite key and the owner.
	cached, err := f.eventRepo.FindByUserID("user-1")
	require.NoError(t, err)
	require.Len(t, cached, 2)
	assert.Equal(t, "user-1_g1", cached[0].ID)
	assert.Equal(t, "user-1", cached[0].UserID)

	meta, err := f.syncRepo.Find("user-1", syncdomain.SyncKindCalendar)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, syncdomain.SyncStatusSuccess, meta.Status)
}

func TestGetEventsServesFreshCacheWithoutProviderCall(t *testing.T) {
	f := newCalendarFixture(t)
	f.provider.events = []*domain.CalendarEvent{hourEvent("g1", time.Hour)}

	_, err := f.uc.GetEvents(context.Background(), "user-1", false)
	require.NoError(t, err)
	require.Equal(t, 1, f.provider.listCalls)

	// Second read within the TTL must come from the cache.
	events, err := f.uc.GetEvents(context.Background(), "user-1", false)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, 1, f.provider.listCalls)
}

func TestGetEventsForceRefreshBypassesFreshness(t *testing.T) {
	f := newCalendarFixture(t)
	f.provider.events = []*domain.CalendarEvent{hourEvent("g1", time.Hour)}

	_, err := f.uc.GetEvents(context.Background(), "user-1", false)
	require.NoError(t, err)

	_, err = f.uc.GetEvents(context.Background(), "user-1", true)
	require.NoError(t, err)
	assert.Equal(t, 2, f.provider.listCalls)
}

func TestRefreshDeduplicatesByProviderID(t *testing.T) {
	f := newCalendarFixture(t)
	first := hourEvent("dup", time.Hour)
	first.Title = "first occurrence"
	second := hourEvent("dup", 3*time.Hour)
	second.Title = "second occurrence"
	f.provider.events = []*domain.CalendarEvent{first, second, hourEvent("other", 4*time.Hour)}

	events, err := f.uc.RefreshCache(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, events, 2)

	cached, err := f.eventRepo.FindByUserID("user-1")
	require.NoError(t, err)
	require.Len(t, cached, 2)
	for _, ev := range cached {
		if ev.GoogleEventID == "dup" {
			assert.Equal(t, "first occurrence", ev.Title)
		}
	}
}

func TestRefreshReplacesRemovedEvents(t *testing.T) {
	f := newCalendarFixture(t)
	f.provider.events = []*domain.CalendarEvent{hourEvent("g1", time.Hour), hourEvent("g2", 2*time.Hour)}

	_, err := f.uc.RefreshCache(context.Background(), "user-1")
	require.NoError(t, err)

	// The provider stops returning g2: it must vanish from the cache.
	f.provider.events = []*domain.CalendarEvent{hourEvent("g1", time.Hour)}
	_, err = f.uc.RefreshCache(context.Background(), "user-1")
	require.NoError(t, err)

	cached, err := f.eventRepo.FindByUserID("user-1")
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "g1", cached[0].GoogleEventID)
}

func TestRefreshFailureRecordsAndPropagates(t *testing.T) {
	f := newCalendarFixture(t)
	f.provider.events = []*domain.CalendarEvent{hourEvent("g1", time.Hour)}

	_, err := f.uc.RefreshCache(context.Background(), "user-1")
	require.NoError(t, err)

	f.provider.err = errors.New("googleapi: 500 backend error")
	_, err = f.uc.RefreshCache(context.Background(), "user-1")
	require.Error(t, err)

	meta, findErr := f.syncRepo.Find("user-1", syncdomain.SyncKindCalendar)
	require.NoError(t, findErr)
	require.NotNil(t, meta)
	assert.Equal(t, syncdomain.SyncStatusFailed, meta.Status)
	assert.Contains(t, meta.ErrorMessage, "backend error")

	// The previously cached rows survive a failed refresh.
	cached, err := f.eventRepo.FindByUserID("user-1")
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestCreateEventRefreshesCache(t *testing.T) {
	f := newCalendarFixture(t)

	start := time.Now().Add(time.Hour)
	created, err := f.uc.CreateEvent(context.Background(), "user-1", domain.EventInput{
		Title: "Planning",
		Start: start,
		End:   start.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "Planning", created.Title)

	cached, err := f.eventRepo.FindByUserID("user-1")
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "created-1", cached[0].GoogleEventID)
}

func TestComputeFreeSlots(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	dayStart := day.Add(8 * time.Hour)
	dayEnd := day.Add(18 * time.Hour)

	events := []*domain.CalendarEvent{
		{StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10 * time.Hour)},
		{StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour)},
		{StartTime: day.Add(14 * time.Hour), EndTime: day.Add(15 * time.Hour)},
	}

	slots := computeFreeSlots(events, dayStart, dayEnd, 30*time.Minute)
	require.Len(t, slots, 3)

	assert.Equal(t, dayStart, slots[0].Start)
	assert.Equal(t, day.Add(9*time.Hour), slots[0].End)
	assert.Equal(t, 60, slots[0].Duration)

	assert.Equal(t, day.Add(11*time.Hour), slots[1].Start)
	assert.Equal(t, day.Add(14*time.Hour), slots[1].End)
	assert.Equal(t, 180, slots[1].Duration)

	assert.Equal(t, day.Add(15*time.Hour), slots[2].Start)
	assert.Equal(t, dayEnd, slots[2].End)
	assert.Equal(t, 180, slots[2].Duration)
}

func TestComputeFreeSlotsSkipsShortGaps(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	dayStart := day.Add(8 * time.Hour)
	dayEnd := day.Add(18 * time.Hour)

	events := []*domain.CalendarEvent{
		{StartTime: day.Add(8*time.Hour + 15*time.Minute), EndTime: day.Add(17*time.Hour + 45*time.Minute)},
	}

	slots := computeFreeSlots(events, dayStart, dayEnd, 30*time.Minute)
	assert.Empty(t, slots)
}

func TestComputeFreeSlotsHandlesOverlappingEvents(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	dayStart := day.Add(8 * time.Hour)
	dayEnd := day.Add(18 * time.Hour)

	// Second event ends before the first does; the cursor must not move
	// backwards.
	events := []*domain.CalendarEvent{
		{StartTime: day.Add(9 * time.Hour), EndTime: day.Add(12 * time.Hour)},
		{StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour)},
	}

	slots := computeFreeSlots(events, dayStart, dayEnd, 30*time.Minute)
	require.Len(t, slots, 2)
	assert.Equal(t, day.Add(12*time.Hour), slots[1].Start)
	assert.Equal(t, dayEnd, slots[1].End)
}

func TestComputeFreeSlotsEmptyDay(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	dayStart := day.Add(8 * time.Hour)
	dayEnd := day.Add(18 * time.Hour)

	slots := computeFreeSlots(nil, dayStart, dayEnd, 30*time.Minute)
	require.Len(t, slots, 1)
	assert.Equal(t, 600, slots[0].Duration)
}
