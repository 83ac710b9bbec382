package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Tabsy Backend",
			"version":     "1.0.0",
			"description": "Calendar, email, task and assistant API",
			"endpoints": gin.H{
				"health":   "/api/health",
				"calendar": "/api/calendar",
				"emails":   "/api/emails",
				"tasks":    "/api/tasks",
				"chat":     "/api/chat",
				"agent":    "/api/agent",
			},
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			googleAuth := "not authenticated"
			if h.googleAuth.IsAuthenticated() {
				googleAuth = "authenticated"
			}
			c.JSON(http.StatusOK, gin.H{
				"status":     "healthy",
				"timestamp":  time.Now().Format(time.RFC3339),
				"service":    "Tabsy Backend",
				"googleAuth": googleAuth,
			})
		})

		auth := api.Group("/auth")
		{
			auth.GET("/google", h.authHandler.GoogleLogin)
			auth.GET("/google/callback", h.authHandler.GoogleCallback)
			auth.GET("/status", h.authHandler.Status)
		}

		calendar := api.Group("/calendar")
		{
			calendar.GET("/events", h.calendarHandler.GetEvents)
			calendar.POST("/events", h.calendarHandler.CreateEvent)
			calendar.PUT("/events/:eventId", h.calendarHandler.UpdateEvent)
			calendar.GET("/free-slots", h.calendarHandler.FindFreeSlots)
		}

		emails := api.Group("/emails")
		{
			emails.GET("", h.emailHandler.GetEmails)
			emails.GET("/unread", h.emailHandler.GetUnreadEmails)
			emails.GET("/search", h.emailHandler.SearchEmails)
			emails.GET("/summary", h.emailHandler.Summarize)
			emails.GET("/:emailId", h.emailHandler.GetEmailByID)
			emails.POST("/:emailId/draft-reply", h.emailHandler.DraftReply)
			emails.PATCH("/:emailId/read", h.emailHandler.MarkAsRead)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", h.taskHandler.GetTasks)
			tasks.POST("", h.taskHandler.CreateTask)
			tasks.GET("/prioritize", h.taskHandler.Prioritize)
			tasks.PUT("/:taskId", h.taskHandler.UpdateTask)
			tasks.DELETE("/:taskId", h.taskHandler.DeleteTask)
		}

		chat := api.Group("/chat")
		{
			chat.GET("/history", h.chatHandler.GetHistory)
			chat.DELETE("/history", h.chatHandler.ClearHistory)
			chat.GET("/stats", h.chatHandler.Stats)
		}

		agent := api.Group("/agent")
		{
			agent.POST("/daily-summary", h.agentHandler.DailySummary)
			agent.POST("/optimize-schedule", h.agentHandler.OptimizeSchedule)
			agent.POST("/urgent-items", h.agentHandler.UrgentItems)
			agent.POST("/chat", h.agentHandler.Chat)
		}
	}
}
