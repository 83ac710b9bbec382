package usecase

import (
	"context"

	"tabsy-backend/internal/email/domain"
)

// EmailProvider is the boundary adapter making authenticated calls to the
// email provider.
type EmailProvider interface {
	FetchUnread(ctx context.Context, limit int) ([]*domain.Email, error)
	MarkAsRead(ctx context.Context, messageID string) error
}

// ListOptions filters the cached collection on the read path.
type ListOptions struct {
	UnreadOnly   bool
	Priority     string // "high", "medium", "low" or "" / "all"
	ForceRefresh bool
}

// ReplyTone selects the draft-reply template register.
type ReplyTone string

const (
	ToneProfessional ReplyTone = "professional"
	ToneFriendly     ReplyTone = "friendly"
	ToneFormal       ReplyTone = "formal"
)

// EmailUsecase serves the cached email collection, refreshing from the
// provider when the cache is stale.
type EmailUsecase interface {
	// GetEmails returns cached emails with heuristic priority tags applied,
	// refreshing the cache first when it is stale or ForceRefresh is set.
	GetEmails(ctx context.Context, userID string, opts ListOptions) ([]*domain.Email, error)

	// GetEmailByID returns one cached email with its priority tag, or a
	// not-found error.
	GetEmailByID(ctx context.Context, userID, emailID string) (*domain.Email, error)

	// RefreshCache upserts the provider's unread set into the cache,
	// enforcing the per-owner ceiling, and records the outcome.
	RefreshCache(ctx context.Context, userID string) ([]*domain.Email, error)

	// MarkAsRead marks the email read at the provider, then in the cache.
	MarkAsRead(ctx context.Context, userID, emailID string) error

	// SearchEmails does a full-text substring search over the cache.
	SearchEmails(ctx context.Context, userID, query string) ([]*domain.Email, error)

	// DraftReply builds a tone-templated reply for a cached email.
	DraftReply(ctx context.Context, userID, emailID, replyContext string, tone ReplyTone) (*domain.ReplyDraft, error)

	// SummarizeInbox produces an LLM summary plus heuristic action items
	// over the cached unread set.
	SummarizeInbox(ctx context.Context, userID string, includeRead bool) (*domain.InboxSummary, error)
}
