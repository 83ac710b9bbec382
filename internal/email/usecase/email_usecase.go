package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tabsy-backend/internal/email/domain"
	"tabsy-backend/internal/email/repository"
	syncdomain "tabsy-backend/internal/sync/domain"
	syncrepo "tabsy-backend/internal/sync/repository"
	"tabsy-backend/pkg/ai"
	"tabsy-backend/pkg/keymutex"
)

// emailCacheTTL is how long a synced email cache is considered fresh.
const emailCacheTTL = 5 * time.Minute

// maxCachedEmails is the per-owner cache ceiling; the oldest rows by
// receipt time are evicted beyond it.
const maxCachedEmails = 500

// readLimit caps the read path at the most recent messages.
const readLimit = 100

// fetchLimit is how many unread messages one refresh pulls from the
// provider.
const fetchLimit = 50

var ErrEmailNotFound = errors.New("email not found")

// emailUsecase implements EmailUsecase
type emailUsecase struct {
	emailRepo    repository.EmailRepository
	syncRepo     syncrepo.SyncMetadataRepository
	provider     EmailProvider
	aiService    ai.Service
	refreshLocks *keymutex.KeyedMutex
}

func NewEmailUsecase(emailRepo repository.EmailRepository, syncRepo syncrepo.SyncMetadataRepository, provider EmailProvider, aiService ai.Service, refreshLocks *keymutex.KeyedMutex) EmailUsecase {
	return &emailUsecase{
		emailRepo:    emailRepo,
		syncRepo:     syncRepo,
		provider:     provider,
		aiService:    aiService,
		refreshLocks: refreshLocks,
	}
}

func (u *emailUsecase) GetEmails(ctx context.Context, userID string, opts ListOptions) ([]*domain.Email, error) {
	unlock := u.refreshLocks.Lock(userID + ":" + string(syncdomain.SyncKindEmail))

	meta, err := u.syncRepo.Find(userID, syncdomain.SyncKindEmail)
	if err != nil {
		unlock()
		return nil, err
	}

	if opts.ForceRefresh || meta.IsStale(time.Now(), emailCacheTTL) {
		log.Printf("Refreshing email cache from Gmail API (user=%s)", userID)
		if _, err := u.refreshCache(ctx, userID); err != nil {
			unlock()
			return nil, err
		}
	}
	unlock()

	emails, err := u.emailRepo.FindByUserID(userID, opts.UnreadOnly, readLimit)
	if err != nil {
		return nil, err
	}

	// Tag every email with its heuristic priority; optionally filter by it.
	result := make([]*domain.Email, 0, len(emails))
	for _, email := range emails {
		email.Priority = AnalyzePriority(email)
		if email.SenderName == "" || email.SenderName == "Unknown" {
			email.SenderName = fallbackSenderName(email.Sender)
		}
		if opts.Priority != "" && opts.Priority != "all" && string(email.Priority) != opts.Priority {
			continue
		}
		result = append(result, email)
	}

	return result, nil
}

func (u *emailUsecase) GetEmailByID(ctx context.Context, userID, emailID string) (*domain.Email, error) {
	email, err := u.emailRepo.FindByMessageID(userID, emailID)
	if err != nil {
		return nil, err
	}
	if email == nil {
		return nil, ErrEmailNotFound
	}

	email.Priority = AnalyzePriority(email)
	if email.SenderName == "" {
		email.SenderName = email.Sender
	}
	return email, nil
}

func (u *emailUsecase) RefreshCache(ctx context.Context, userID string) ([]*domain.Email, error) {
	unlock := u.refreshLocks.Lock(userID + ":" + string(syncdomain.SyncKindEmail))
	defer unlock()
	return u.refreshCache(ctx, userID)
}

// refreshCache pulls the provider's unread set, evicts oldest rows beyond
// the ceiling, then upserts. Existing rows untouched by the fetch are left
// as-is, so read history survives. The caller must hold the refresh lock.
func (u *emailUsecase) refreshCache(ctx context.Context, userID string) ([]*domain.Email, error) {
	emails, err := u.doRefresh(ctx, userID)
	if err != nil {
		if recordErr := u.syncRepo.RecordFailure(userID, syncdomain.SyncKindEmail, time.Now(), err.Error()); recordErr != nil {
			log.Printf("[ERROR] Failed to record email sync failure: %v", recordErr)
		}
		return nil, err
	}

	if err := u.syncRepo.RecordSuccess(userID, syncdomain.SyncKindEmail, time.Now()); err != nil {
		return nil, err
	}

	log.Printf("Cached %d emails (user=%s)", len(emails), userID)
	return emails, nil
}

func (u *emailUsecase) doRefresh(ctx context.Context, userID string) ([]*domain.Email, error) {
	fetched, err := u.provider.FetchUnread(ctx, fetchLimit)
	if err != nil {
		return nil, err
	}

	// Enforce the cache ceiling before inserting: evict oldest-by-receipt.
	count, err := u.emailRepo.CountByUserID(userID)
	if err != nil {
		return nil, err
	}
	if count > maxCachedEmails {
		if err := u.emailRepo.DeleteOldest(userID, int(count-maxCachedEmails)); err != nil {
			return nil, err
		}
	}

	syncedAt := time.Now()
	for _, email := range fetched {
		email.UserID = userID
		email.LastSyncedAt = syncedAt
		if email.ReceivedAt.IsZero() {
			email.ReceivedAt = syncedAt
		}
		if email.Priority == "" {
			email.Priority = AnalyzePriority(email)
		}
		if err := u.emailRepo.Upsert(email); err != nil {
			return nil, err
		}
	}

	return fetched, nil
}

func (u *emailUsecase) MarkAsRead(ctx context.Context, userID, emailID string) error {
	email, err := u.emailRepo.FindByMessageID(userID, emailID)
	if err != nil {
		return err
	}
	if email == nil {
		return ErrEmailNotFound
	}

	// Provider first; the cache only flips once the upstream change took.
	if err := u.provider.MarkAsRead(ctx, emailID); err != nil {
		return err
	}

	return u.emailRepo.MarkRead(userID, emailID)
}

func (u *emailUsecase) SearchEmails(ctx context.Context, userID, query string) ([]*domain.Email, error) {
	// Make sure the cache is reasonably fresh before searching it.
	if _, err := u.GetEmails(ctx, userID, ListOptions{}); err != nil {
		return nil, err
	}
	return u.emailRepo.Search(userID, query, 50)
}

func (u *emailUsecase) DraftReply(ctx context.Context, userID, emailID, replyContext string, tone ReplyTone) (*domain.ReplyDraft, error) {
	email, err := u.GetEmailByID(ctx, userID, emailID)
	if err != nil {
		return nil, err
	}

	var greeting, closing string
	switch tone {
	case ToneFriendly:
		greeting = fmt.Sprintf("Hey %s,", email.SenderName)
		closing = "Cheers,\nYour Name"
	case ToneFormal:
		greeting = fmt.Sprintf("Dear %s,", email.SenderName)
		closing = "Sincerely,\nYour Name"
	default:
		greeting = fmt.Sprintf("Hi %s,", email.SenderName)
		closing = "Best regards,\nYour Name"
	}

	middle := replyContext
	if middle == "" {
		middle = "I have reviewed your message and will get back to you with more details shortly."
	}

	body := fmt.Sprintf("%s\n\nThank you for your email regarding %q.\n\n%s\n\n%s",
		greeting, email.Subject, middle, closing)

	return &domain.ReplyDraft{
		Subject: "Re: " + email.Subject,
		Body:    body,
	}, nil
}

func (u *emailUsecase) SummarizeInbox(ctx context.Context, userID string, includeRead bool) (*domain.InboxSummary, error) {
	emails, err := u.GetEmails(ctx, userID, ListOptions{UnreadOnly: !includeRead})
	if err != nil {
		return nil, err
	}

	if len(emails) == 0 {
		return &domain.InboxSummary{Summary: "No emails to summarize.", ActionItems: []*domain.ActionItem{}}, nil
	}

	actionItems := make([]*domain.ActionItem, 0)
	var sb strings.Builder
	for i, email := range emails {
		if i >= 20 {
			break
		}
		fmt.Fprintf(&sb, "- From %s: %s — %s\n", email.SenderName, email.Subject, email.Snippet)

		if email.Priority == domain.PriorityHigh {
			actionItems = append(actionItems, &domain.ActionItem{
				EmailID:  email.GmailMessageID,
				Subject:  email.Subject,
				Action:   PriorityReason(email, email.Priority),
				Priority: email.Priority,
			})
		}
	}

	summary := fmt.Sprintf("%d email(s) in view, %d flagged high priority.", len(emails), len(actionItems))
	if u.aiService != nil {
		prompt := fmt.Sprintf(`You are an email assistant. Summarize the following inbox in at most 3 sentences, highlighting anything requiring action.

EMAILS:
%s
SUMMARY:`, sb.String())
		if text, err := u.aiService.Generate(ctx, prompt); err == nil {
			summary = text
		} else {
			log.Printf("[WARN] Inbox summary generation failed, using heuristic summary: %v", err)
		}
	}

	return &domain.InboxSummary{
		Summary:     summary,
		ActionItems: actionItems,
		TotalEmails: len(emails),
	}, nil
}

// fallbackSenderName derives a display name from an address like
// "noreply@apple.com" -> "noreply".
func fallbackSenderName(sender string) string {
	if idx := strings.Index(sender, "@"); idx > 0 {
		return sender[:idx]
	}
	if sender == "" {
		return "Unknown"
	}
	return sender
}
