package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tabsy-backend/internal/sync/domain"
)

// gormSyncMetadataRepository implements SyncMetadataRepository using GORM
type gormSyncMetadataRepository struct {
	db *gorm.DB
}

func NewSyncMetadataRepository(db *gorm.DB) SyncMetadataRepository {
	return &gormSyncMetadataRepository{db: db}
}

func (r *gormSyncMetadataRepository) Find(userID string, kind domain.SyncKind) (*domain.SyncMetadata, error) {
	var meta domain.SyncMetadata
	err := r.db.Where("user_id = ? AND sync_kind = ?", userID, kind).First(&meta).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &meta, nil
}

func (r *gormSyncMetadataRepository) RecordSuccess(userID string, kind domain.SyncKind, at time.Time) error {
	return r.record(userID, kind, at, domain.SyncStatusSuccess, "")
}

func (r *gormSyncMetadataRepository) RecordFailure(userID string, kind domain.SyncKind, at time.Time, errMsg string) error {
	return r.record(userID, kind, at, domain.SyncStatusFailed, errMsg)
}

func (r *gormSyncMetadataRepository) record(userID string, kind domain.SyncKind, at time.Time, status domain.SyncStatus, errMsg string) error {
	meta, err := r.Find(userID, kind)
	if err != nil {
		return err
	}

	now := time.Now()
	if meta == nil {
		meta = &domain.SyncMetadata{
			ID:           uuid.New().String(),
			UserID:       userID,
			SyncKind:     kind,
			LastSyncAt:   &at,
			Status:       status,
			ErrorMessage: errMsg,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return r.db.Create(meta).Error
	}

	// LastSyncAt never moves backwards once set.
	if meta.LastSyncAt == nil || at.After(*meta.LastSyncAt) {
		meta.LastSyncAt = &at
	}
	meta.Status = status
	meta.ErrorMessage = errMsg
	meta.UpdatedAt = now
	return r.db.Save(meta).Error
}
