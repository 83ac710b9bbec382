package repository

import (
	"time"

	"tabsy-backend/internal/chat/domain"
)

type ChatRepository interface {
	// GetOrCreateActive returns the user's most recently updated
	// conversation, creating one when none exists.
	GetOrCreateActive(userID string) (*domain.ChatConversation, error)
	AddMessage(conversationID, role, content string) (*domain.ChatMessage, error)
	History(conversationID string, limit int) ([]*domain.ChatMessage, error)
	ArchiveOld(userID string, olderThan time.Time) (int64, error)
	Clear(userID string) error
	Stats(userID string) (*domain.ChatStats, error)
}
