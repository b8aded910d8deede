package v1

import (
	"tvbank-assistant-backend/internal/assistant"
	"tvbank-assistant-backend/internal/config"
	"tvbank-assistant-backend/internal/handlers"
	"tvbank-assistant-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

func registerProviders(r fiber.Router, guard fiber.Handler) {
	credStore := store.NewGormCredentialStore(config.DB)
	orchestrator := assistant.NewOrchestrator(credStore)
	providerHandler := handlers.NewProviderHandler(credStore, orchestrator)

	r.Get("/providers/:provider", guard, providerHandler.GetConfig)
	r.Put("/providers/:provider", guard, providerHandler.PutConfig)
	r.Post("/providers/:provider/test", guard, providerHandler.TestConnection)
}
