package domain

import "time"

// CalendarEvent is a locally cached copy of a Google Calendar event. The
// owner's whole event set is replaced on every refresh, so rows only live as
// long as the provider keeps returning them.
type CalendarEvent struct {
	ID            string    `json:"id" gorm:"primaryKey"` // userID_googleEventID
	UserID        string    `json:"user_id" gorm:"index;not null"`
	GoogleEventID string    `json:"google_event_id" gorm:"index;not null"`
	Title         string    `json:"title" gorm:"not null"`
	Description   string    `json:"description,omitempty"`
	StartTime     time.Time `json:"start_time" gorm:"index"`
	EndTime       time.Time `json:"end_time"`
	Location      string    `json:"location,omitempty"`
	LastSyncedAt  time.Time `json:"last_synced_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FreeSlot is a gap between events long enough to hold a meeting.
type FreeSlot struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration"` // minutes
}

// EventInput carries the fields for creating a provider event.
type EventInput struct {
	Title       string
	Start       time.Time
	End         time.Time
	Description string
	Location    string
}

// EventUpdate carries the optional fields for updating a provider event.
// Nil fields are left untouched.
type EventUpdate struct {
	Title    *string
	NewStart *time.Time
	NewEnd   *time.Time
}
