package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tabsy-backend/internal/email/domain"
)

// gormEmailRepository implements EmailRepository using GORM
type gormEmailRepository struct {
	db *gorm.DB
}

func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &gormEmailRepository{db: db}
}

func (r *gormEmailRepository) FindByUserID(userID string, unreadOnly bool, limit int) ([]*domain.Email, error) {
	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var emails []*domain.Email
	err := query.Order("received_at DESC").Limit(limit).Find(&emails).Error
	return emails, err
}

func (r *gormEmailRepository) FindByMessageID(userID, gmailMessageID string) (*domain.Email, error) {
	var email domain.Email
	err := r.db.Where("user_id = ? AND gmail_message_id = ?", userID, gmailMessageID).First(&email).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &email, nil
}

func (r *gormEmailRepository) Upsert(email *domain.Email) error {
	existing, err := r.FindByMessageID(email.UserID, email.GmailMessageID)
	if err != nil {
		return err
	}

	now := time.Now()
	if existing == nil {
		if email.ID == "" {
			email.ID = uuid.New().String()
		}
		email.CreatedAt = now
		email.UpdatedAt = now
		return r.db.Create(email).Error
	}

	// Update-in-place: only read state, sender name and sync time change;
	// cached body and receipt fields are kept.
	existing.IsRead = email.IsRead
	existing.SenderName = email.SenderName
	existing.LastSyncedAt = email.LastSyncedAt
	existing.UpdatedAt = now
	return r.db.Save(existing).Error
}

func (r *gormEmailRepository) CountByUserID(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Email{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *gormEmailRepository) DeleteOldest(userID string, n int) error {
	if n <= 0 {
		return nil
	}

	var ids []string
	err := r.db.Model(&domain.Email{}).
		Where("user_id = ?", userID).
		Order("received_at ASC").
		Limit(n).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	return r.db.Where("id IN ?", ids).Delete(&domain.Email{}).Error
}

func (r *gormEmailRepository) MarkRead(userID, gmailMessageID string) error {
	return r.db.Model(&domain.Email{}).
		Where("user_id = ? AND gmail_message_id = ?", userID, gmailMessageID).
		Updates(map[string]interface{}{
			"is_read":    true,
			"updated_at": time.Now(),
		}).Error
}

func (r *gormEmailRepository) Search(userID, query string, limit int) ([]*domain.Email, error) {
	like := "%" + query + "%"
	var emails []*domain.Email
	err := r.db.Where("user_id = ? AND (subject LIKE ? OR sender LIKE ? OR body_text LIKE ?)",
		userID, like, like, like).
		Order("received_at DESC").
		Limit(limit).
		Find(&emails).Error
	return emails, err
}
