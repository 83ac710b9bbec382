package repository

import (
	"time"

	"tabsy-backend/internal/sync/domain"
)

// SyncMetadataRepository persists per-(owner, kind) sync state used to judge
// cache freshness.
type SyncMetadataRepository interface {
	// Find returns the metadata row for (userID, kind), or nil if none exists.
	Find(userID string, kind domain.SyncKind) (*domain.SyncMetadata, error)

	// RecordSuccess upserts the row with status success at the given time.
	RecordSuccess(userID string, kind domain.SyncKind, at time.Time) error

	// RecordFailure upserts the row with status failed and the error message.
	RecordFailure(userID string, kind domain.SyncKind, at time.Time, errMsg string) error
}
