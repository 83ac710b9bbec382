package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tabsy-backend/internal/task/domain"
)

// taskOrder sorts high before medium before low, earliest due date first
// with undated tasks last, newest created first.
const taskOrder = "CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, " +
	"CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC, created_at DESC"

// gormTaskRepository implements TaskRepository using GORM
type gormTaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()
	return r.db.Create(task).Error
}

func (r *gormTaskRepository) FindByID(id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.Where("id = ?", id).First(&task).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskRepository) FindByUserID(userID string, filters Filters) ([]*domain.Task, error) {
	query := r.db.Where("user_id = ?", userID)
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Priority != "" {
		query = query.Where("priority = ?", filters.Priority)
	}

	var tasks []*domain.Task
	err := query.Order(taskOrder).Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepository) FindActiveByUserID(userID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.Where("user_id = ? AND status != ?", userID, domain.StatusCompleted).
		Order(taskOrder).
		Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepository) Update(task *domain.Task) error {
	task.UpdatedAt = time.Now()
	return r.db.Save(task).Error
}

func (r *gormTaskRepository) Delete(id string) error {
	return r.db.Delete(&domain.Task{}, "id = ?", id).Error
}
