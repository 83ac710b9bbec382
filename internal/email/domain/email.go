package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Priority is the heuristic importance tag assigned to a cached email.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// StringArray stores a JSON array in a text column.
type StringArray []string

// Value implements driver.Valuer
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = []string{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	if len(bytes) == 0 {
		*a = []string{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// Email is a locally cached copy of a Gmail message. Rows are upserted per
// refresh rather than replaced, so messages that stop being unread upstream
// stay cached until overwritten or evicted by the per-owner ceiling.
type Email struct {
	ID             string      `json:"-" gorm:"primaryKey"`
	UserID         string      `json:"-" gorm:"index;not null"`
	GmailMessageID string      `json:"id" gorm:"uniqueIndex;not null"`
	ThreadID       string      `json:"thread_id,omitempty"`
	Subject        string      `json:"subject"`
	Sender         string      `json:"sender"`
	SenderName     string      `json:"sender_name"`
	Snippet        string      `json:"snippet"`
	BodyText       string      `json:"body_text,omitempty"`
	ReceivedAt     time.Time   `json:"received_at" gorm:"index"`
	IsRead         bool        `json:"is_read" gorm:"default:false"`
	Priority       Priority    `json:"priority" gorm:"default:medium"`
	Labels         StringArray `json:"labels" gorm:"type:text"`
	LastSyncedAt   time.Time   `json:"last_synced_at"`
	CreatedAt      time.Time   `json:"-"`
	UpdatedAt      time.Time   `json:"-"`
}

// ReplyDraft is a tone-templated reply suggestion for a cached email.
type ReplyDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ActionItem is a heuristic follow-up extracted from an email during inbox
// summarization.
type ActionItem struct {
	EmailID  string   `json:"email_id"`
	Subject  string   `json:"subject"`
	Action   string   `json:"action"`
	Priority Priority `json:"priority"`
}

// InboxSummary is the result of summarizing the cached unread set.
type InboxSummary struct {
	Summary     string        `json:"summary"`
	ActionItems []*ActionItem `json:"action_items"`
	TotalEmails int           `json:"total_emails"`
}
