package api

import (
	"github.com/gin-gonic/gin"

	agentDelivery "tabsy-backend/internal/agent/delivery"
	agentUsecasePkg "tabsy-backend/internal/agent/usecase"
	authDelivery "tabsy-backend/internal/auth/delivery"
	calendarDelivery "tabsy-backend/internal/calendar/delivery"
	calendarUsecasePkg "tabsy-backend/internal/calendar/usecase"
	chatDelivery "tabsy-backend/internal/chat/delivery"
	chatUsecasePkg "tabsy-backend/internal/chat/usecase"
	emailDelivery "tabsy-backend/internal/email/delivery"
	emailUsecasePkg "tabsy-backend/internal/email/usecase"
	taskDelivery "tabsy-backend/internal/task/delivery"
	taskUsecasePkg "tabsy-backend/internal/task/usecase"
	"tabsy-backend/pkg/config"
	"tabsy-backend/pkg/google"
)

type Handler struct {
	config          *config.Config
	authHandler     *authDelivery.AuthHandler
	calendarHandler *calendarDelivery.CalendarHandler
	emailHandler    *emailDelivery.EmailHandler
	taskHandler     *taskDelivery.TaskHandler
	chatHandler     *chatDelivery.ChatHandler
	agentHandler    *agentDelivery.AgentHandler
	googleAuth      *google.Manager
}

func NewHandler(
	cfg *config.Config,
	googleAuth *google.Manager,
	calendarUc calendarUsecasePkg.CalendarUsecase,
	emailUc emailUsecasePkg.EmailUsecase,
	taskUc taskUsecasePkg.TaskUsecase,
	chatUc chatUsecasePkg.ChatUsecase,
	agentUc agentUsecasePkg.AgentUsecase,
) *Handler {
	return &Handler{
		config:          cfg,
		authHandler:     authDelivery.NewAuthHandler(googleAuth, cfg.FrontendURL),
		calendarHandler: calendarDelivery.NewCalendarHandler(calendarUc),
		emailHandler:    emailDelivery.NewEmailHandler(emailUc),
		taskHandler:     taskDelivery.NewTaskHandler(taskUc),
		chatHandler:     chatDelivery.NewChatHandler(chatUc),
		agentHandler:    agentDelivery.NewAgentHandler(agentUc),
		googleAuth:      googleAuth,
	}
}

func (h *Handler) Start(addr string) error {
	return h.buildEngine().Run(addr)
}

// buildEngine sets the gin mode before the engine is constructed so the
// release setting actually applies to it.
func (h *Handler) buildEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)

	return r
}
