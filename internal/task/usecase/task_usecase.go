package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"tabsy-backend/internal/task/domain"
	"tabsy-backend/internal/task/repository"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrTitleMissing = errors.New("title is required")
)

type taskUsecase struct {
	taskRepo repository.TaskRepository
}

func NewTaskUsecase(taskRepo repository.TaskRepository) TaskUsecase {
	return &taskUsecase{taskRepo: taskRepo}
}

func (u *taskUsecase) GetTasks(ctx context.Context, userID string, filters repository.Filters) ([]*domain.Task, error) {
	tasks, err := u.taskRepo.FindByUserID(userID, filters)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch tasks: %v", err)
	}
	return tasks, nil
}

func (u *taskUsecase) CreateTask(ctx context.Context, userID string, input CreateTaskInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleMissing
	}

	priority := domain.Priority(input.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}
	status := domain.Status(input.Status)
	if status == "" {
		status = domain.StatusPending
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		Status:      status,
		Category:    input.Category,
		DueDate:     input.DueDate,
	}
	if err := u.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("unable to create task: %v", err)
	}
	return task, nil
}

func (u *taskUsecase) UpdateTask(ctx context.Context, userID, taskID string, input UpdateTaskInput) (*domain.Task, error) {
	task, err := u.findOwned(userID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleMissing
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = domain.Priority(*input.Priority)
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Status != nil {
		newStatus := domain.Status(*input.Status)
		// CompletedAt records the first completion only. Reopening a
		// task keeps the original timestamp.
		if newStatus == domain.StatusCompleted && task.Status != domain.StatusCompleted && task.CompletedAt == nil {
			now := time.Now()
			task.CompletedAt = &now
		}
		task.Status = newStatus
	}

	if err := u.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("unable to update task: %v", err)
	}
	return task, nil
}

func (u *taskUsecase) DeleteTask(ctx context.Context, userID, taskID string) error {
	if _, err := u.findOwned(userID, taskID); err != nil {
		return err
	}
	if err := u.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("unable to delete task: %v", err)
	}
	return nil
}

func (u *taskUsecase) Prioritize(ctx context.Context, userID string) (*PrioritizeResult, error) {
	tasks, err := u.taskRepo.FindActiveByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch tasks: %v", err)
	}

	now := time.Now()
	scored := make([]*domain.ScoredTask, 0, len(tasks))
	for _, t := range tasks {
		score := Score(t, now)
		scored = append(scored, &domain.ScoredTask{
			Task:           t,
			UrgencyScore:   score,
			Recommendation: Recommendation(score),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].UrgencyScore > scored[j].UrgencyScore
	})

	return &PrioritizeResult{
		Tasks:   scored,
		Summary: Summarize(scored),
	}, nil
}

// findOwned resolves a task ID and verifies ownership; tasks belonging to a
// different user look like not-found.
func (u *taskUsecase) findOwned(userID, taskID string) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch task: %v", err)
	}
	if task == nil || task.UserID != userID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}
