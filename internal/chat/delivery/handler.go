package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tabsy-backend/internal/chat/usecase"
	"tabsy-backend/internal/user"
)

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
}

func NewChatHandler(chatUsecase usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{chatUsecase: chatUsecase}
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	conversation, err := h.chatUsecase.ActiveConversation(c.Request.Context(), user.DefaultUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	messages, err := h.chatUsecase.History(c.Request.Context(), conversation.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"conversationId": conversation.ID,
			"messages":       messages,
		},
	})
}

func (h *ChatHandler) ClearHistory(c *gin.Context) {
	if err := h.chatUsecase.ClearHistory(c.Request.Context(), user.DefaultUserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"cleared": true},
	})
}

func (h *ChatHandler) Stats(c *gin.Context) {
	stats, err := h.chatUsecase.Stats(c.Request.Context(), user.DefaultUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

func respondError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
