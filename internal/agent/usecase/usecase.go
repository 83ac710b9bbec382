package usecase

import "context"

type ChatResult struct {
	ConversationID string `json:"conversationId"`
	Reply          string `json:"reply"`
}

// AgentUsecase is the assistant boundary: it assembles workspace context
// from the cached calendar, email and task state, sends a single prompt to
// the configured LLM, and returns the text verbatim.
type AgentUsecase interface {
	DailySummary(ctx context.Context, userID string) (string, error)
	OptimizeSchedule(ctx context.Context, userID string) (string, error)
	UrgentItems(ctx context.Context, userID string) (string, error)
	Chat(ctx context.Context, userID, message string) (*ChatResult, error)
}
