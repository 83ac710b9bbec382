package delivery

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tabsy-backend/pkg/google"
)

type AuthHandler struct {
	auth        *google.Manager
	frontendURL string
}

func NewAuthHandler(auth *google.Manager, frontendURL string) *AuthHandler {
	return &AuthHandler{auth: auth, frontendURL: frontendURL}
}

// GoogleLogin redirects the browser to Google's consent screen.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, h.auth.AuthURL())
}

// GoogleCallback exchanges the authorization code and bounces back to the
// frontend dashboard.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusTemporaryRedirect, fmt.Sprintf("%s/?auth=error", h.frontendURL))
		return
	}

	if _, err := h.auth.Exchange(c.Request.Context(), code); err != nil {
		log.Printf("[ERROR] google token exchange failed: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, fmt.Sprintf("%s/?auth=error", h.frontendURL))
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, fmt.Sprintf("%s/dashboard?auth=success", h.frontendURL))
}

func (h *AuthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"authenticated": h.auth.IsAuthenticated(),
		},
	})
}
