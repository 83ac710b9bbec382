package repository

import "tabsy-backend/internal/email/domain"

// EmailRepository is the persisted cache of externally sourced emails, keyed
// by owner and Gmail message ID.
type EmailRepository interface {
	// FindByUserID returns cached emails ordered by receipt time descending,
	// capped at limit. unreadOnly restricts to is_read = false.
	FindByUserID(userID string, unreadOnly bool, limit int) ([]*domain.Email, error)

	// FindByMessageID returns the cached email with the given provider ID,
	// or nil if it is not cached.
	FindByMessageID(userID, gmailMessageID string) (*domain.Email, error)

	// Upsert creates the email if its provider ID is unknown; otherwise it
	// updates read state, sender name and last-synced time in place.
	Upsert(email *domain.Email) error

	// CountByUserID returns the owner's cached email count.
	CountByUserID(userID string) (int64, error)

	// DeleteOldest removes the n oldest emails for the owner by receipt time.
	DeleteOldest(userID string, n int) error

	// MarkRead flips the cached read flag for one email.
	MarkRead(userID, gmailMessageID string) error

	// Search does a substring match over subject, sender and body, newest
	// first, capped at limit.
	Search(userID, query string, limit int) ([]*domain.Email, error)
}
