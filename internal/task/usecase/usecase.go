package usecase

import (
	"context"
	"time"

	"tabsy-backend/internal/task/domain"
	"tabsy-backend/internal/task/repository"
)

type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskInput uses pointers so absent fields are left untouched.
type UpdateTaskInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}

type PrioritizeResult struct {
	Tasks   []*domain.ScoredTask `json:"tasks"`
	Summary string               `json:"summary"`
}

type TaskUsecase interface {
	GetTasks(ctx context.Context, userID string, filters repository.Filters) ([]*domain.Task, error)
	CreateTask(ctx context.Context, userID string, input CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, input UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
	Prioritize(ctx context.Context, userID string) (*PrioritizeResult, error)
}
