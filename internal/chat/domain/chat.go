package domain

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatConversation struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index" json:"userId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ChatMessage struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	ConversationID string    `gorm:"index" json:"conversationId"`
	Role           string    `json:"role"`
	Content        string    `gorm:"type:text" json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ChatStats struct {
	Conversations int64 `json:"conversations"`
	Messages      int64 `json:"messages"`
}
