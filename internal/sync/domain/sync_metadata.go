package domain

import "time"

// SyncKind identifies which externally sourced collection a metadata row
// tracks.
type SyncKind string

const (
	SyncKindCalendar SyncKind = "calendar"
	SyncKindEmail    SyncKind = "email"
)

// SyncStatus is the outcome of the most recent refresh attempt.
type SyncStatus string

const (
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusFailed  SyncStatus = "failed"
)

// SyncMetadata records, per (owner, kind), when the cache was last refreshed
// and whether that refresh succeeded. One row per pair; created lazily on the
// first refresh attempt and never deleted. LastSyncAt is monotonically
// non-decreasing once set.
type SyncMetadata struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	UserID       string     `json:"user_id" gorm:"index:idx_user_kind,unique;not null"`
	SyncKind     SyncKind   `json:"sync_kind" gorm:"index:idx_user_kind,unique;not null"`
	LastSyncAt   *time.Time `json:"last_sync_at"`
	Status       SyncStatus `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsStale reports whether the cache behind this row is older than ttl at
// the given instant. A nil receiver (no row yet) is always stale.
func (m *SyncMetadata) IsStale(now time.Time, ttl time.Duration) bool {
	if m == nil || m.LastSyncAt == nil {
		return true
	}
	return now.Sub(*m.LastSyncAt) > ttl
}
