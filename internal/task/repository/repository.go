package repository

import "tabsy-backend/internal/task/domain"

// Filters narrow the task listing; empty fields match everything. Matching
// is exact on the stored enum values.
type Filters struct {
	Status   string
	Priority string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(task *domain.Task) error

	// FindByID returns the task, or nil if unknown.
	FindByID(id string) (*domain.Task, error)

	// FindByUserID lists the user's tasks ordered by priority (high first),
	// due date ascending with nulls last, then creation time descending.
	FindByUserID(userID string, filters Filters) ([]*domain.Task, error)

	// FindActiveByUserID lists the user's non-completed tasks in the same
	// order.
	FindActiveByUserID(userID string) ([]*domain.Task, error)

	Update(task *domain.Task) error

	// Delete is an unconditional hard delete.
	Delete(id string) error
}
