package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tabsy-backend/internal/task/domain"
)

func taskWithDue(priority domain.Priority, due *time.Time) *domain.Task {
	return &domain.Task{Title: "t", Priority: priority, DueDate: due}
}

func TestScoreBands(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		priority domain.Priority
		dueIn    time.Duration
		hasDue   bool
		want     int
	}{
		// base 10 + daily 8 + hourly 40 + adjustment 10
		{"high due in an hour", domain.PriorityHigh, time.Hour, true, 68},
		// base 10 + daily 8 + hourly 20 + adjustment 10
		{"high due later today", domain.PriorityHigh, 20 * time.Hour, true, 48},
		// base 5 + daily 5 + hourly 0
		{"medium due in two days", domain.PriorityMedium, 48 * time.Hour, true, 10},
		// base 2 + daily 2 - adjustment 10, clamped
		{"low due next week", domain.PriorityLow, 6 * 24 * time.Hour, true, 0},
		// base 2 - adjustment 10, clamped; undated gets no hourly bonus
		{"low without due date", domain.PriorityLow, 0, false, 0},
		// base 10 + adjustment 10, undated
		{"high without due date", domain.PriorityHigh, 0, false, 20},
		// overdue: daily and hourly both max out
		{"medium overdue", domain.PriorityMedium, -2 * time.Hour, true, 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var due *time.Time
			if tt.hasDue {
				d := now.Add(tt.dueIn)
				due = &d
			}
			assert.Equal(t, tt.want, Score(taskWithDue(tt.priority, due), now))
		})
	}
}

func TestScoreStaysInRange(t *testing.T) {
	now := time.Now()
	overdue := now.Add(-100 * time.Hour)
	far := now.Add(1000 * time.Hour)

	for _, p := range []domain.Priority{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow} {
		for _, due := range []*time.Time{nil, &overdue, &far} {
			score := Score(taskWithDue(p, due), now)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestUrgentHighOutranksDistantLow(t *testing.T) {
	now := time.Now()
	soon := now.Add(time.Hour)
	distant := now.Add(10 * 24 * time.Hour)

	urgent := Score(taskWithDue(domain.PriorityHigh, &soon), now)
	relaxed := Score(taskWithDue(domain.PriorityLow, &distant), now)
	assert.Greater(t, urgent, relaxed)
}

func TestRecommendationBands(t *testing.T) {
	assert.Equal(t, "Do immediately", Recommendation(80))
	assert.Equal(t, "Schedule in next 2 hours", Recommendation(60))
	assert.Equal(t, "Can wait until afternoon", Recommendation(40))
	assert.Equal(t, "Low priority - schedule when available", Recommendation(39))
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "No active tasks found.", Summarize(nil))

	scored := []*domain.ScoredTask{
		{Task: &domain.Task{Title: "Ship release"}, UrgencyScore: 85},
		{Task: &domain.Task{Title: "Review PR"}, UrgencyScore: 70},
		{Task: &domain.Task{Title: "Write notes"}, UrgencyScore: 30},
		{Task: &domain.Task{Title: "Tidy backlog"}, UrgencyScore: 10},
	}

	summary := Summarize(scored)
	assert.Contains(t, summary, "You have 4 active task(s).")
	assert.Contains(t, summary, "2 require immediate attention.")
	assert.Contains(t, summary, "Focus on: Ship release, Review PR, Write notes")
	assert.NotContains(t, summary, "Tidy backlog")
}
