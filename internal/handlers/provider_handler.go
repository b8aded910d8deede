package handlers

import (
	"strings"

	"tvbank-assistant-backend/internal/assistant"
	llmHandlers "tvbank-assistant-backend/internal/llm_handlers"
	"tvbank-assistant-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type ProviderHandler struct {
	credStore    store.CredentialStore
	orchestrator *assistant.Orchestrator
}

func NewProviderHandler(credStore store.CredentialStore, orchestrator *assistant.Orchestrator) *ProviderHandler {
	return &ProviderHandler{credStore: credStore, orchestrator: orchestrator}
}

func parseProviderParam(c *fiber.Ctx) (llmHandlers.Provider, bool) {
	provider, err := llmHandlers.ParseProvider(c.Params("provider"))
	if err != nil {
		return "", false
	}
	return provider, true
}

func unknownProvider(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Unknown provider",
	})
}

// maskKey hides all but the tail of a stored API key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// GetConfig returns the stored configuration, or the defaults when nothing
// has been saved yet. The key is never echoed back in full.
func (h *ProviderHandler) GetConfig(c *fiber.Ctx) error {
	provider, ok := parseProviderParam(c)
	if !ok {
		return unknownProvider(c)
	}

	config, ok, loadErr := h.credStore.Get(provider)
	if loadErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load configuration",
		})
	}
	if !ok {
		config = llmHandlers.DefaultConfig(provider)
	}

	hasKey := config.APIKey != ""
	config.APIKey = maskKey(config.APIKey)

	return c.JSON(fiber.Map{
		"config":     config,
		"has_key":    hasKey,
		"configured": ok,
	})
}

// PutConfig saves the provider configuration. A config without an API key is
// rejected, so an empty key can never overwrite a working one.
func (h *ProviderHandler) PutConfig(c *fiber.Ctx) error {
	provider, ok := parseProviderParam(c)
	if !ok {
		return unknownProvider(c)
	}

	// Temperature is a pointer so an explicit 0 survives; a missing field
	// falls back to the default.
	var dto struct {
		APIKey       string   `json:"apiKey"`
		Model        string   `json:"model"`
		SystemPrompt string   `json:"systemPrompt"`
		Temperature  *float64 `json:"temperature"`
		MaxTokens    int      `json:"maxTokens"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if strings.TrimSpace(dto.APIKey) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Vui lòng nhập API Key",
		})
	}

	defaults := llmHandlers.DefaultConfig(provider)
	config := llmHandlers.ProviderConfig{
		Provider:     provider,
		APIKey:       dto.APIKey,
		Model:        dto.Model,
		SystemPrompt: dto.SystemPrompt,
		MaxTokens:    dto.MaxTokens,
	}
	if config.Model == "" {
		config.Model = defaults.Model
	}
	if config.SystemPrompt == "" {
		config.SystemPrompt = defaults.SystemPrompt
	}
	if dto.Temperature != nil {
		config.Temperature = *dto.Temperature
	} else {
		config.Temperature = defaults.Temperature
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = defaults.MaxTokens
	}

	if err := h.credStore.Put(provider, config); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save configuration",
		})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// TestConnection probes the provider with the submitted config, falling back
// to the stored one when the body carries no key. Provider failures surface
// here and nowhere else.
func (h *ProviderHandler) TestConnection(c *fiber.Ctx) error {
	provider, ok := parseProviderParam(c)
	if !ok {
		return unknownProvider(c)
	}

	var config llmHandlers.ProviderConfig
	if err := c.BodyParser(&config); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(config.APIKey) == "" {
		stored, ok, loadErr := h.credStore.Get(provider)
		if loadErr != nil || !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Vui lòng kiểm tra lại API Key",
			})
		}
		config = stored
	}

	defaults := llmHandlers.DefaultConfig(provider)
	config.Provider = provider
	if config.Model == "" {
		config.Model = defaults.Model
	}

	if err := h.orchestrator.TestConnection(c.Context(), provider, config); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   "Vui lòng kiểm tra lại API Key",
			"detail":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
