// Package gmail is the boundary adapter for the Gmail API.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/mail"
	"regexp"
	"sort"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	emaildomain "tabsy-backend/internal/email/domain"
	"tabsy-backend/pkg/google"
)

type Service struct {
	auth *google.Manager
}

func NewService(auth *google.Manager) *Service {
	return &Service{auth: auth}
}

func (s *Service) gmailService(ctx context.Context) (*gmail.Service, error) {
	client, err := s.auth.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %v", err)
	}
	return srv, nil
}

// FetchUnread lists unread messages via a provider-side query and fetches
// each message's details in parallel.
func (s *Service) FetchUnread(ctx context.Context, limit int) ([]*emaildomain.Email, error) {
	srv, err := s.gmailService(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 50
	}

	listResp, err := srv.Users.Messages.List("me").
		Q("is:unread").
		MaxResults(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list unread messages: %v", err)
	}

	type fetchResult struct {
		email *emaildomain.Email
		err   error
	}

	results := make(chan fetchResult, len(listResp.Messages))
	semaphore := make(chan struct{}, 10) // max concurrent detail fetches

	for _, stub := range listResp.Messages {
		go func(msgID string) {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			msg, err := srv.Users.Messages.Get("me", msgID).Format("full").Context(ctx).Do()
			if err != nil {
				results <- fetchResult{nil, err}
				return
			}
			results <- fetchResult{convertGmailMessage(msg), nil}
		}(stub.Id)
	}

	emails := make([]*emaildomain.Email, 0, len(listResp.Messages))
	for range listResp.Messages {
		res := <-results
		if res.err != nil {
			// Skip messages we can't fetch; the rest of the batch is still
			// useful.
			continue
		}
		emails = append(emails, res.email)
	}

	// Parallel fetching returns messages in arbitrary order.
	sort.Slice(emails, func(i, j int) bool {
		return emails[i].ReceivedAt.After(emails[j].ReceivedAt)
	})

	return emails, nil
}

// MarkAsRead removes the UNREAD label from a message.
func (s *Service) MarkAsRead(ctx context.Context, messageID string) error {
	srv, err := s.gmailService(ctx)
	if err != nil {
		return err
	}

	_, err = srv.Users.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to mark message as read: %v", err)
	}
	return nil
}

// Helper functions

var senderPattern = regexp.MustCompile(`^(.+?)\s*<(.+?)>$`)

func convertGmailMessage(msg *gmail.Message) *emaildomain.Email {
	from := getHeader(msg.Payload.Headers, "From")
	senderName, senderEmail := splitSender(from)

	subject := getHeader(msg.Payload.Headers, "Subject")
	if subject == "" {
		subject = "No Subject"
	}

	receivedAt := parseReceivedAt(msg)

	return &emaildomain.Email{
		GmailMessageID: msg.Id,
		ThreadID:       msg.ThreadId,
		Subject:        subject,
		Sender:         senderEmail,
		SenderName:     senderName,
		Snippet:        msg.Snippet,
		BodyText:       getPlainBody(msg.Payload),
		ReceivedAt:     receivedAt,
		IsRead:         !hasLabel(msg.LabelIds, "UNREAD"),
		Labels:         emaildomain.StringArray(msg.LabelIds),
	}
}

// splitSender breaks a "Name <email@example.com>" header into its parts.
func splitSender(from string) (name, email string) {
	if m := senderPattern.FindStringSubmatch(from); m != nil {
		return strings.Trim(strings.TrimSpace(m[1]), `"`), strings.TrimSpace(m[2])
	}
	if from == "" {
		return "Unknown", "Unknown"
	}
	return from, from
}

// parseReceivedAt prefers the Date header; unparseable dates fall back to
// the provider's internal timestamp, then to now.
func parseReceivedAt(msg *gmail.Message) time.Time {
	if raw := getHeader(msg.Payload.Headers, "Date"); raw != "" {
		if t, err := mail.ParseDate(raw); err == nil {
			return t
		}
	}
	if msg.InternalDate > 0 {
		return time.Unix(msg.InternalDate/1000, 0)
	}
	return time.Now()
}

func getHeader(headers []*gmail.MessagePartHeader, name string) string {
	for _, header := range headers {
		if header.Name == name {
			return header.Value
		}
	}
	return ""
}

func getPlainBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}
	if payload.Body != nil && payload.Body.Data != "" && payload.MimeType == "text/plain" {
		if data, err := base64.URLEncoding.DecodeString(payload.Body.Data); err == nil {
			return string(data)
		}
	}

	var plain string
	var findBody func(parts []*gmail.MessagePart)
	findBody = func(parts []*gmail.MessagePart) {
		for _, part := range parts {
			if plain != "" {
				return
			}
			if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
				if data, err := base64.URLEncoding.DecodeString(part.Body.Data); err == nil {
					plain = string(data)
					return
				}
			}
			if len(part.Parts) > 0 {
				findBody(part.Parts)
			}
		}
	}
	findBody(payload.Parts)
	return plain
}

func hasLabel(labels []string, labelID string) bool {
	for _, label := range labels {
		if label == labelID {
			return true
		}
	}
	return false
}
