package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tabsy-backend/internal/email/usecase"
	"tabsy-backend/internal/user"
	"tabsy-backend/pkg/google"
)

// EmailHandler handles email-related HTTP requests
type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase) *EmailHandler {
	return &EmailHandler{emailUsecase: emailUsecase}
}

// DraftReplyRequest represents the request body for drafting a reply
type DraftReplyRequest struct {
	Context string `json:"context"`
	Tone    string `json:"tone"`
}

// GetEmails returns the cached email collection with priority tags.
// GET /api/emails?forceRefresh=true&unreadOnly=true&priority=high
func (h *EmailHandler) GetEmails(c *gin.Context) {
	opts := usecase.ListOptions{
		UnreadOnly:   c.Query("unreadOnly") == "true",
		Priority:     c.Query("priority"),
		ForceRefresh: c.Query("forceRefresh") == "true",
	}

	emails, err := h.emailUsecase.GetEmails(c.Request.Context(), user.DefaultUserID, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": emails})
}

// GetUnreadEmails returns unread cached emails.
// GET /api/emails/unread?forceRefresh=true
func (h *EmailHandler) GetUnreadEmails(c *gin.Context) {
	opts := usecase.ListOptions{
		UnreadOnly:   true,
		ForceRefresh: c.Query("forceRefresh") == "true",
	}

	emails, err := h.emailUsecase.GetEmails(c.Request.Context(), user.DefaultUserID, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": emails})
}

// GetEmailByID returns one cached email with full details.
// GET /api/emails/:emailId
func (h *EmailHandler) GetEmailByID(c *gin.Context) {
	email, err := h.emailUsecase.GetEmailByID(c.Request.Context(), user.DefaultUserID, c.Param("emailId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": email})
}

// DraftReply builds a tone-templated reply draft.
// POST /api/emails/:emailId/draft-reply
func (h *EmailHandler) DraftReply(c *gin.Context) {
	var req DraftReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	tone := usecase.ReplyTone(req.Tone)
	if tone == "" {
		tone = usecase.ToneProfessional
	}

	draft, err := h.emailUsecase.DraftReply(c.Request.Context(), user.DefaultUserID, c.Param("emailId"), req.Context, tone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": draft})
}

// Summarize produces an inbox summary with heuristic action items.
// GET /api/emails/summary?includeRead=true
func (h *EmailHandler) Summarize(c *gin.Context) {
	summary, err := h.emailUsecase.SummarizeInbox(c.Request.Context(), user.DefaultUserID, c.Query("includeRead") == "true")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}

// MarkAsRead marks the email read at the provider and in the cache.
// PATCH /api/emails/:emailId/read
func (h *EmailHandler) MarkAsRead(c *gin.Context) {
	err := h.emailUsecase.MarkAsRead(c.Request.Context(), user.DefaultUserID, c.Param("emailId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"message": "Email marked as read"}})
}

// SearchEmails does a substring search over the cache.
// GET /api/emails/search?q=invoice
func (h *EmailHandler) SearchEmails(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "query parameter q is required"})
		return
	}

	emails, err := h.emailUsecase.SearchEmails(c.Request.Context(), user.DefaultUserID, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": emails})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmailNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case google.IsAuthError(err):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
