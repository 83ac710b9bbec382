package usecase

import (
	"fmt"
	"strings"

	"tabsy-backend/internal/email/domain"
)

// Keyword lists driving the heuristic priority tag. Matching is
// case-insensitive over subject, snippet and body.
var highPriorityKeywords = []string{
	"urgent", "asap", "important", "critical", "deadline", "emergency",
	"action required", "immediate", "expires", "due", "overdue",
	"interview", "meeting", "tomorrow", "today", "tonight",
}

var mediumPriorityKeywords = []string{
	"reminder", "follow up", "feedback", "response", "reply",
	"update", "status", "review", "check", "confirm",
}

// VIP senders always rank high. Static for now; could be configured per
// user later.
var vipSenders = []string{
	"@company.com",
	"@client.com",
	"boss@",
	"ceo@",
	"manager@",
}

// AnalyzePriority assigns a heuristic importance tag to an email.
func AnalyzePriority(email *domain.Email) domain.Priority {
	text := strings.ToLower(email.Subject + " " + email.Snippet + " " + email.BodyText)
	sender := strings.ToLower(email.Sender)

	if isVIPSender(sender) {
		return domain.PriorityHigh
	}

	for _, keyword := range highPriorityKeywords {
		if strings.Contains(text, keyword) {
			return domain.PriorityHigh
		}
	}

	for _, keyword := range mediumPriorityKeywords {
		if strings.Contains(text, keyword) {
			return domain.PriorityMedium
		}
	}

	return domain.PriorityLow
}

// PriorityReason explains why an email got its tag.
func PriorityReason(email *domain.Email, priority domain.Priority) string {
	text := strings.ToLower(email.Subject + " " + email.Snippet)

	switch priority {
	case domain.PriorityHigh:
		if isVIPSender(strings.ToLower(email.Sender)) {
			return "VIP sender"
		}
		for _, keyword := range highPriorityKeywords {
			if strings.Contains(text, keyword) {
				return fmt.Sprintf("Contains keyword: %q", keyword)
			}
		}
	case domain.PriorityMedium:
		for _, keyword := range mediumPriorityKeywords {
			if strings.Contains(text, keyword) {
				return fmt.Sprintf("Contains keyword: %q", keyword)
			}
		}
	}

	return "Standard priority"
}

func isVIPSender(sender string) bool {
	for _, vip := range vipSenders {
		if strings.Contains(sender, vip) {
			return true
		}
	}
	return false
}
