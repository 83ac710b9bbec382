package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tabsy-backend/internal/chat/domain"
	"tabsy-backend/internal/chat/repository"
)

const (
	historyLimit     = 50
	transcriptLimit  = 10
	archiveAfterDays = 30
)

type chatUsecase struct {
	chatRepo repository.ChatRepository
}

func NewChatUsecase(chatRepo repository.ChatRepository) ChatUsecase {
	return &chatUsecase{chatRepo: chatRepo}
}

func (u *chatUsecase) ActiveConversation(ctx context.Context, userID string) (*domain.ChatConversation, error) {
	return u.chatRepo.GetOrCreateActive(userID)
}

func (u *chatUsecase) StoreMessage(ctx context.Context, conversationID, role, content string) (*domain.ChatMessage, error) {
	return u.chatRepo.AddMessage(conversationID, role, content)
}

func (u *chatUsecase) History(ctx context.Context, conversationID string, limit int) ([]*domain.ChatMessage, error) {
	if limit <= 0 || limit > historyLimit {
		limit = historyLimit
	}
	return u.chatRepo.History(conversationID, limit)
}

func (u *chatUsecase) BuildTranscript(ctx context.Context, conversationID string, limit int) (string, error) {
	if limit <= 0 {
		limit = transcriptLimit
	}

	messages, err := u.chatRepo.History(conversationID, 0)
	if err != nil {
		return "", fmt.Errorf("unable to fetch conversation history: %v", err)
	}
	if len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	if len(messages) == 0 {
		return "", nil
	}

	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		label := "User"
		if m.Role == domain.RoleAssistant {
			label = "Assistant"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, m.Content))
	}
	return strings.Join(lines, "\n\n"), nil
}

func (u *chatUsecase) ArchiveOldConversations(ctx context.Context, userID string) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -archiveAfterDays)
	return u.chatRepo.ArchiveOld(userID, cutoff)
}

func (u *chatUsecase) ClearHistory(ctx context.Context, userID string) error {
	return u.chatRepo.Clear(userID)
}

func (u *chatUsecase) Stats(ctx context.Context, userID string) (*domain.ChatStats, error) {
	return u.chatRepo.Stats(userID)
}
