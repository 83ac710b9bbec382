package main

import (
	"context"
	"log"
	"time"

	api "tabsy-backend/cmd/api"
	agentUsecase "tabsy-backend/internal/agent/usecase"
	calendardomain "tabsy-backend/internal/calendar/domain"
	calendarRepo "tabsy-backend/internal/calendar/repository"
	calendarUsecase "tabsy-backend/internal/calendar/usecase"
	chatdomain "tabsy-backend/internal/chat/domain"
	chatRepo "tabsy-backend/internal/chat/repository"
	chatUsecase "tabsy-backend/internal/chat/usecase"
	emaildomain "tabsy-backend/internal/email/domain"
	emailRepo "tabsy-backend/internal/email/repository"
	emailUsecase "tabsy-backend/internal/email/usecase"
	syncdomain "tabsy-backend/internal/sync/domain"
	syncRepo "tabsy-backend/internal/sync/repository"
	taskdomain "tabsy-backend/internal/task/domain"
	taskRepo "tabsy-backend/internal/task/repository"
	taskUsecase "tabsy-backend/internal/task/usecase"
	"tabsy-backend/internal/user"
	"tabsy-backend/pkg/ai"
	"tabsy-backend/pkg/config"
	"tabsy-backend/pkg/database"
	"tabsy-backend/pkg/gcal"
	"tabsy-backend/pkg/gmail"
	"tabsy-backend/pkg/google"
	"tabsy-backend/pkg/keymutex"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&user.User{},
		&syncdomain.SyncMetadata{},
		&calendardomain.CalendarEvent{},
		&emaildomain.Email{},
		&taskdomain.Task{},
		&chatdomain.ChatConversation{},
		&chatdomain.ChatMessage{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Single-owner deployment: every row belongs to the default user
	if err := user.EnsureDefault(db); err != nil {
		log.Fatal("Failed to ensure default user:", err)
	}

	// Google OAuth manager shared by the calendar and Gmail services
	googleAuth := google.NewManager(cfg)
	calendarService := gcal.NewService(googleAuth)
	gmailService := gmail.NewService(googleAuth)

	// LLM provider (OpenAI, Gemini or a local Ollama)
	aiService, err := ai.NewService(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIModel:   cfg.OpenAIModel,
		GeminiAPIKey:  cfg.GeminiApiKey,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		log.Fatal("Failed to initialize AI service:", err)
	}

	// One refresh lock per (user, source) pair
	refreshLocks := keymutex.New()

	// Initialize repositories (dependency injection)
	syncMetadataRepo := syncRepo.NewSyncMetadataRepository(db)
	calendarEventRepo := calendarRepo.NewCalendarEventRepository(db)
	emailRepository := emailRepo.NewEmailRepository(db)
	taskRepository := taskRepo.NewTaskRepository(db)
	chatRepository := chatRepo.NewChatRepository(db)

	// Initialize use cases (dependency injection)
	calendarUc := calendarUsecase.NewCalendarUsecase(calendarEventRepo, syncMetadataRepo, calendarService, refreshLocks)
	emailUc := emailUsecase.NewEmailUsecase(emailRepository, syncMetadataRepo, gmailService, aiService, refreshLocks)
	taskUc := taskUsecase.NewTaskUsecase(taskRepository)
	chatUc := chatUsecase.NewChatUsecase(chatRepository)
	agentUc := agentUsecase.NewAgentUsecase(aiService, calendarUc, emailUc, taskUc, chatUc)

	// Sweep conversations idle for over a month, once a day
	go func() {
		ctx := context.Background()
		for {
			if removed, err := chatUc.ArchiveOldConversations(ctx, user.DefaultUserID); err != nil {
				log.Printf("[WARN] Conversation archive sweep failed: %v", err)
			} else if removed > 0 {
				log.Printf("Archived %d old conversation(s)", removed)
			}
			time.Sleep(24 * time.Hour)
		}
	}()

	// Initialize HTTP handler
	handler := api.NewHandler(cfg, googleAuth, calendarUc, emailUc, taskUc, chatUc, agentUc)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
