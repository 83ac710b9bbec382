package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tabsy-backend/internal/task/repository"
	"tabsy-backend/internal/task/usecase"
	"tabsy-backend/internal/user"
)

type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
}

func NewTaskHandler(taskUsecase usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase}
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	filters := repository.Filters{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}

	tasks, err := h.taskUsecase.GetTasks(c.Request.Context(), user.DefaultUserID, filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tasks,
	})
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var input usecase.CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid request body",
		})
		return
	}

	task, err := h.taskUsecase.CreateTask(c.Request.Context(), user.DefaultUserID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    task,
	})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var input usecase.UpdateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid request body",
		})
		return
	}

	task, err := h.taskUsecase.UpdateTask(c.Request.Context(), user.DefaultUserID, c.Param("taskId"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    task,
	})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskUsecase.DeleteTask(c.Request.Context(), user.DefaultUserID, c.Param("taskId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

func (h *TaskHandler) Prioritize(c *gin.Context) {
	result, err := h.taskUsecase.Prioritize(c.Request.Context(), user.DefaultUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, usecase.ErrTitleMissing):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
	}
}
