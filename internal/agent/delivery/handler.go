package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tabsy-backend/internal/agent/usecase"
	"tabsy-backend/internal/user"
	"tabsy-backend/pkg/google"
)

type AgentHandler struct {
	agentUsecase usecase.AgentUsecase
}

func NewAgentHandler(agentUsecase usecase.AgentUsecase) *AgentHandler {
	return &AgentHandler{agentUsecase: agentUsecase}
}

func (h *AgentHandler) DailySummary(c *gin.Context) {
	summary, err := h.agentUsecase.DailySummary(c.Request.Context(), user.DefaultUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"text": summary},
	})
}

func (h *AgentHandler) OptimizeSchedule(c *gin.Context) {
	suggestions, err := h.agentUsecase.OptimizeSchedule(c.Request.Context(), user.DefaultUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"text": suggestions},
	})
}

func (h *AgentHandler) UrgentItems(c *gin.Context) {
	items, err := h.agentUsecase.UrgentItems(c.Request.Context(), user.DefaultUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"text": items},
	})
}

func (h *AgentHandler) Chat(c *gin.Context) {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid request body",
		})
		return
	}

	result, err := h.agentUsecase.Chat(c.Request.Context(), user.DefaultUserID, body.Message)
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
	case errors.Is(err, usecase.ErrMessageMissing):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
	case google.IsAuthError(err):
		c.JSON(http.StatusUnauthorized, gin.H{
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
