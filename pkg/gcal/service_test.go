package gcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/calendar/v3"
)

func TestConvertCalendarEvent(t *testing.T) {
	item := &calendar.Event{
		Id:      "ev-1",
		Summary: "Planning",
		Start:   &calendar.EventDateTime{DateTime: "2026-03-02T10:00:00Z"},
		End:     &calendar.EventDateTime{DateTime: "2026-03-02T11:00:00Z"},
	}

	ev := convertCalendarEvent(item)
	assert.Equal(t, "ev-1", ev.GoogleEventID)
	assert.Equal(t, "Planning", ev.Title)
	assert.Equal(t, time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), ev.StartTime.UTC())
	assert.Equal(t, time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC), ev.EndTime.UTC())
}

func TestConvertCalendarEventDefensiveDefaults(t *testing.T) {
	// Missing start: defaults to now; missing end: start plus one hour.
	ev := convertCalendarEvent(&calendar.Event{Id: "ev-2"})
	assert.Equal(t, "Untitled Event", ev.Title)
	assert.WithinDuration(t, time.Now(), ev.StartTime, time.Second)
	assert.Equal(t, ev.StartTime.Add(time.Hour), ev.EndTime)

	// Unparseable end also falls back to start plus one hour.
	ev = convertCalendarEvent(&calendar.Event{
		Id:    "ev-3",
		Start: &calendar.EventDateTime{DateTime: "2026-03-02T10:00:00Z"},
		End:   &calendar.EventDateTime{DateTime: "garbage"},
	})
	assert.Equal(t, ev.StartTime.Add(time.Hour), ev.EndTime)
}

func TestParseEventTime(t *testing.T) {
	// Timed event.
	got, ok := parseEventTime(&calendar.EventDateTime{DateTime: "2026-03-02T10:00:00+07:00"})
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC), got.UTC())

	// All-day event uses the bare date.
	got, ok = parseEventTime(&calendar.EventDateTime{Date: "2026-03-02"})
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), got)

	_, ok = parseEventTime(nil)
	assert.False(t, ok)

	_, ok = parseEventTime(&calendar.EventDateTime{DateTime: "garbage"})
	assert.False(t, ok)
}
