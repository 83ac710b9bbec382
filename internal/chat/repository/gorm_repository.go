package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tabsy-backend/internal/chat/domain"
)

type gormChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepository{db: db}
}

func (r *gormChatRepository) GetOrCreateActive(userID string) (*domain.ChatConversation, error) {
	var conversation domain.ChatConversation
	err := r.db.
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("unable to fetch conversation: %v", err)
	}

	conversation = domain.ChatConversation{
		ID:     uuid.New().String(),
		UserID: userID,
		Title:  "New conversation",
	}
	if err := r.db.Create(&conversation).Error; err != nil {
		return nil, fmt.Errorf("unable to create conversation: %v", err)
	}
	return &conversation, nil
}

func (r *gormChatRepository) AddMessage(conversationID, role, content string) (*domain.ChatMessage, error) {
	message := &domain.ChatMessage{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&domain.ChatConversation{}).
			Where("id = ?", conversationID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, fmt.Errorf("unable to store message: %v", err)
	}
	return message, nil
}

func (r *gormChatRepository) History(conversationID string, limit int) ([]*domain.ChatMessage, error) {
	var messages []*domain.ChatMessage
	query := r.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *gormChatRepository) ArchiveOld(userID string, olderThan time.Time) (int64, error) {
	var removed int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&domain.ChatConversation{}).
			Where("user_id = ? AND updated_at < ?", userID, olderThan).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("conversation_id IN ?", ids).Delete(&domain.ChatMessage{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&domain.ChatConversation{})
		removed = result.RowsAffected
		return result.Error
	})
	return removed, err
}

func (r *gormChatRepository) Clear(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&domain.ChatConversation{}).
			Where("user_id = ?", userID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("conversation_id IN ?", ids).Delete(&domain.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&domain.ChatConversation{}).Error
	})
}

func (r *gormChatRepository) Stats(userID string) (*domain.ChatStats, error) {
	var stats domain.ChatStats
	if err := r.db.Model(&domain.ChatConversation{}).
		Where("user_id = ?", userID).
		Count(&stats.Conversations).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&domain.ChatMessage{}).
		Joins("JOIN chat_conversations ON chat_conversations.id = chat_messages.conversation_id").
		Where("chat_conversations.user_id = ?", userID).
		Count(&stats.Messages).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
