package usecase

import (
	"fmt"
	"math"
	"strings"
	"time"

	"tabsy-backend/internal/task/domain"
)

// defaultDueHorizon substitutes for a missing due date in the hourly
// urgency term, so undated tasks collect no time bonus.
const defaultDueHorizon = 7 * 24 * time.Hour

// Score computes a task's urgency on a 0-100 scale from its stated priority
// and time until due. This is the single canonical scoring function: a base
// weight per priority, a coarse daily bonus, a sharper hourly bonus as the
// deadline closes in, and a final priority adjustment, clamped to [0, 100].
func Score(task *domain.Task, now time.Time) int {
	score := 0

	switch task.Priority {
	case domain.PriorityHigh:
		score += 10
	case domain.PriorityMedium:
		score += 5
	default:
		score += 2
	}

	due := now.Add(defaultDueHorizon)
	if task.DueDate != nil {
		due = *task.DueDate

		daysUntilDue := int(math.Ceil(due.Sub(now).Hours() / 24))
		switch {
		case daysUntilDue <= 1:
			score += 8
		case daysUntilDue <= 3:
			score += 5
		case daysUntilDue <= 7:
			score += 2
		}
	}

	hoursUntilDue := due.Sub(now).Hours()
	switch {
	case hoursUntilDue < 2:
		score += 40
	case hoursUntilDue < 6:
		score += 30
	case hoursUntilDue < 24:
		score += 20
	}

	switch task.Priority {
	case domain.PriorityHigh:
		score += 10
	case domain.PriorityLow:
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Recommendation maps a score band to an actionable suggestion.
func Recommendation(score int) string {
	switch {
	case score >= 80:
		return "Do immediately"
	case score >= 60:
		return "Schedule in next 2 hours"
	case score >= 40:
		return "Can wait until afternoon"
	default:
		return "Low priority - schedule when available"
	}
}

// Summarize produces the one-line digest shown with a prioritized list.
func Summarize(scored []*domain.ScoredTask) string {
	if len(scored) == 0 {
		return "No active tasks found."
	}

	highUrgency := 0
	for _, t := range scored {
		if t.UrgencyScore >= 70 {
			highUrgency++
		}
	}

	top := make([]string, 0, 3)
	for i, t := range scored {
		if i >= 3 {
			break
		}
		top = append(top, t.Title)
	}

	return fmt.Sprintf("You have %d active task(s). %d require immediate attention. Focus on: %s",
		len(scored), highUrgency, strings.Join(top, ", "))
}
