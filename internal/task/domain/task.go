package domain

import "time"

// Priority represents a stated task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Status represents the current state of a task
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Task is a locally authored to-do item. Tasks are persisted directly with
// no caching layer.
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status" gorm:"default:pending"`
	Priority    Priority   `json:"priority" gorm:"default:medium"`
	Category    string     `json:"category,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ScoredTask is a task annotated with its urgency score for prioritized
// views.
type ScoredTask struct {
	*Task
	UrgencyScore   int    `json:"urgency_score"`
	Recommendation string `json:"recommendation"`
}
