package usecase

import (
	"context"

	"tabsy-backend/internal/chat/domain"
)

type ChatUsecase interface {
	ActiveConversation(ctx context.Context, userID string) (*domain.ChatConversation, error)
	StoreMessage(ctx context.Context, conversationID, role, content string) (*domain.ChatMessage, error)
	History(ctx context.Context, conversationID string, limit int) ([]*domain.ChatMessage, error)
	// BuildTranscript renders the most recent messages as alternating
	// "User:"/"Assistant:" lines for inclusion in an LLM prompt.
	BuildTranscript(ctx context.Context, conversationID string, limit int) (string, error)
	ArchiveOldConversations(ctx context.Context, userID string) (int64, error)
	ClearHistory(ctx context.Context, userID string) error
	Stats(ctx context.Context, userID string) (*domain.ChatStats, error)
}
