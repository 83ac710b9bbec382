package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tabsy-backend/internal/email/domain"
)

func TestAnalyzePriorityKeywords(t *testing.T) {
	tests := []struct {
		name  string
		email *domain.Email
		want  domain.Priority
	}{
		{
			name:  "urgent subject",
			email: &domain.Email{Subject: "URGENT: production incident", Sender: "ops@example.com"},
			want:  domain.PriorityHigh,
		},
		{
			name:  "deadline in body",
			email: &domain.Email{Subject: "Contract", BodyText: "the deadline is Friday", Sender: "legal@example.com"},
			want:  domain.PriorityHigh,
		},
		{
			name:  "reminder is medium",
			email: &domain.Email{Subject: "Reminder: timesheets", Sender: "hr@example.com"},
			want:  domain.PriorityMedium,
		},
		{
			name:  "plain mail is low",
			email: &domain.Email{Subject: "Weekend photos", Snippet: "had a great time", Sender: "friend@example.com"},
			want:  domain.PriorityLow,
		},
		{
			name:  "vip sender beats content",
			email: &domain.Email{Subject: "hello", Sender: "ceo@example.com"},
			want:  domain.PriorityHigh,
		},
		{
			name:  "matching is case insensitive",
			email: &domain.Email{Subject: "AcTiOn ReQuIrEd", Sender: "noreply@example.com"},
			want:  domain.PriorityHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalyzePriority(tt.email))
		})
	}
}

func TestPriorityReason(t *testing.T) {
	vip := &domain.Email{Subject: "hi", Sender: "boss@example.com"}
	assert.Equal(t, "VIP sender", PriorityReason(vip, domain.PriorityHigh))

	keyword := &domain.Email{Subject: "This is urgent", Sender: "a@b.com"}
	assert.Contains(t, PriorityReason(keyword, domain.PriorityHigh), "urgent")

	plain := &domain.Email{Subject: "hello", Sender: "a@b.com"}
	assert.Equal(t, "Standard priority", PriorityReason(plain, domain.PriorityLow))
}
