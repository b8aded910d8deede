package v1

import (
	"tvbank-assistant-backend/internal/assistant"
	"tvbank-assistant-backend/internal/config"
	"tvbank-assistant-backend/internal/handlers"
	"tvbank-assistant-backend/internal/libraries"
	"tvbank-assistant-backend/internal/repo"
	"tvbank-assistant-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

var hub *libraries.Hub

func init() {
	// Initialize the Hub once
	hub = libraries.NewHub()
	// Start the Hub in a goroutine
	go hub.Run()
}

// ChatRoutes is the group of routes for the chat API.
func registerChat(r fiber.Router, guard fiber.Handler) {
	chatRepo := repo.NewChatRepository(config.DB)
	chatHandler := handlers.NewChatHandler(chatRepo)

	credStore := store.NewGormCredentialStore(config.DB)
	orchestrator := assistant.NewOrchestrator(credStore)
	workflow := assistant.NewWorkflow(orchestrator, chatRepo)

	r.Post("/sessions", guard, chatHandler.CreateSession)
	r.Get("/sessions", guard, chatHandler.GetSessions)
	r.Post("/chat/:sessionId", guard, workflow.TriggerChat)
	r.Get("/chat/:sessionId", guard, chatHandler.GetMessagesBySessionId)

	// Use the Hub-based WebSocket handler
	r.Get("/ws", libraries.WebSocketHandler(hub, workflow))
}
