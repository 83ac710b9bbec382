// Package gcal is the boundary adapter for the Google Calendar API.
package gcal

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	calendardomain "tabsy-backend/internal/calendar/domain"
	"tabsy-backend/pkg/google"
)

type Service struct {
	auth *google.Manager
}

func NewService(auth *google.Manager) *Service {
	return &Service{auth: auth}
}

func (s *Service) calendarService(ctx context.Context) (*calendar.Service, error) {
	client, err := s.auth.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %v", err)
	}
	return srv, nil
}

// ListEvents fetches the primary calendar for the whole [timeMin, timeMax]
// window in a single batched call, expanded to single events and ordered by
// start time.
func (s *Service) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*calendardomain.CalendarEvent, error) {
	srv, err := s.calendarService(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Events.List("primary").
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list calendar events: %v", err)
	}

	events := make([]*calendardomain.CalendarEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		events = append(events, convertCalendarEvent(item))
	}
	return events, nil
}

// InsertEvent creates a new event on the primary calendar.
func (s *Service) InsertEvent(ctx context.Context, input calendardomain.EventInput) (*calendardomain.CalendarEvent, error) {
	srv, err := s.calendarService(ctx)
	if err != nil {
		return nil, err
	}

	body := &calendar.Event{
		Summary:     input.Title,
		Description: input.Description,
		Location:    input.Location,
		Start:       &calendar.EventDateTime{DateTime: input.Start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: input.End.Format(time.RFC3339)},
	}

	created, err := srv.Events.Insert("primary", body).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar event: %v", err)
	}
	return convertCalendarEvent(created), nil
}

// UpdateEvent patches an existing event; the full body is fetched first so
// untouched provider fields round-trip unchanged.
func (s *Service) UpdateEvent(ctx context.Context, eventID string, upd calendardomain.EventUpdate) (*calendardomain.CalendarEvent, error) {
	srv, err := s.calendarService(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := srv.Events.Get("primary", eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to fetch calendar event %s: %v", eventID, err)
	}

	if upd.Title != nil {
		existing.Summary = *upd.Title
	}
	if upd.NewStart != nil {
		existing.Start = &calendar.EventDateTime{DateTime: upd.NewStart.Format(time.RFC3339)}
	}
	if upd.NewEnd != nil {
		existing.End = &calendar.EventDateTime{DateTime: upd.NewEnd.Format(time.RFC3339)}
	}

	updated, err := srv.Events.Update("primary", eventID, existing).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to update calendar event %s: %v", eventID, err)
	}
	return convertCalendarEvent(updated), nil
}

// Helper functions

// convertCalendarEvent maps a provider event to the local schema. Records
// missing a usable start are given defensive defaults (start := now,
// end := start+1h) rather than being rejected.
func convertCalendarEvent(item *calendar.Event) *calendardomain.CalendarEvent {
	title := item.Summary
	if title == "" {
		title = "Untitled Event"
	}

	start, startOK := parseEventTime(item.Start)
	if !startOK {
		start = time.Now()
	}
	end, endOK := parseEventTime(item.End)
	if !endOK {
		end = start.Add(time.Hour)
	}

	return &calendardomain.CalendarEvent{
		GoogleEventID: item.Id,
		Title:         title,
		Description:   item.Description,
		StartTime:     start,
		EndTime:       end,
		Location:      item.Location,
	}
}

// parseEventTime handles both timed (dateTime) and all-day (date) events.
func parseEventTime(edt *calendar.EventDateTime) (time.Time, bool) {
	if edt == nil {
		return time.Time{}, false
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t, true
		}
		return time.Time{}, false
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
