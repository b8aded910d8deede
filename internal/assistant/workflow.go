package assistant

import (
	"context"
	"io"
	"log"

	llmHandlers "tvbank-assistant-backend/internal/llm_handlers"
	"tvbank-assistant-backend/internal/libraries"
	"tvbank-assistant-backend/internal/models"
	"tvbank-assistant-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const historyWindow = 20

// Workflow ties one chat turn together: load history, ask the orchestrator,
// persist the exchange. It backs both the HTTP endpoint and the websocket
// processor.
type Workflow struct {
	orchestrator *Orchestrator
	chatRepo     repo.ChatRepoInterface
}

func NewWorkflow(orchestrator *Orchestrator, chatRepo repo.ChatRepoInterface) *Workflow {
	return &Workflow{orchestrator: orchestrator, chatRepo: chatRepo}
}

func parseUserRole(s string) models.UserRole {
	switch models.UserRole(s) {
	case models.RoleConsultant:
		return models.RoleConsultant
	case models.RoleBranchManager:
		return models.RoleBranchManager
	default:
		return models.RoleCustomer
	}
}

func parseProviderOrDefault(s string) llmHandlers.Provider {
	provider, err := llmHandlers.ParseProvider(s)
	if err != nil {
		return llmHandlers.ProviderGemini
	}
	return provider
}

// TriggerChat handles one synchronous chat turn over HTTP.
func (w *Workflow) TriggerChat(c *fiber.Ctx) error {
	sessionId, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session id",
		})
	}

	var dto struct {
		Message  string `json:"message"`
		Role     string `json:"role"`
		Provider string `json:"provider"`
	}

	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if dto.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message cannot be empty",
		})
	}

	if _, err := w.chatRepo.GetSession(sessionId); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	// Body role wins, otherwise fall back to the authenticated role.
	roleStr := dto.Role
	if roleStr == "" {
		roleStr, _ = c.Locals("user_role").(string)
	}
	role := parseUserRole(roleStr)
	provider := parseProviderOrDefault(dto.Provider)

	history, err := w.chatRepo.GetChatHistory(sessionId, historyWindow)
	if err != nil {
		log.Printf("[assistant] history load failed: %v", err)
		history = nil
	}

	aiResponse := w.orchestrator.Respond(c.Context(), dto.Message, role, provider, history)

	humanId, aiId, err := w.chatRepo.CreateHumanAndAiMessages(sessionId, dto.Message, aiResponse)
	if err != nil {
		log.Printf("[assistant] failed to persist turn: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save messages",
		})
	}

	return c.JSON(fiber.Map{
		"message":          aiResponse,
		"human_message_id": humanId,
		"ai_message_id":    aiId,
	})
}

// ProcessChatMessage runs one chat turn for a websocket client, streaming
// chunks as they arrive and persisting the turn at the end.
func (w *Workflow) ProcessChatMessage(hub *libraries.Hub, client *libraries.Client, sessionId string, message *libraries.ChatMessagePayload) {
	sessionUUID, err := uuid.Parse(sessionId)
	if err != nil {
		libraries.SendErrorMessage(hub, client, "Invalid session id")
		return
	}
	if message.Message == "" {
		libraries.SendErrorMessage(hub, client, "Message cannot be empty")
		return
	}
	if _, err := w.chatRepo.GetSession(sessionUUID); err != nil {
		libraries.SendErrorMessage(hub, client, "Session not found")
		return
	}

	role := parseUserRole(message.Role)
	provider := parseProviderOrDefault(message.Provider)

	history, err := w.chatRepo.GetChatHistory(sessionUUID, historyWindow)
	if err != nil {
		log.Printf("[assistant] history load failed: %v", err)
		history = nil
	}

	libraries.SendEventType(hub, client, libraries.WebSocketMessageTypeChatStarting)

	stream := w.orchestrator.RespondStream(context.Background(), message.Message, role, provider, history)
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("[assistant] stream interrupted: %v", err)
			break
		}
		libraries.SendChatChunk(hub, client, sessionId, chunk)
	}

	aiResponse := stream.Text()
	if aiResponse == "" {
		libraries.SendErrorMessage(hub, client, "Failed to process message")
		return
	}

	humanId, aiId, err := w.chatRepo.CreateHumanAndAiMessages(sessionUUID, message.Message, aiResponse)
	if err != nil {
		log.Printf("[assistant] failed to persist turn: %v", err)
		libraries.SendErrorMessage(hub, client, "Failed to save messages")
		return
	}

	libraries.SendChatMessageResponse(hub, client, libraries.WebSocketMessageTypeChatResponse, &libraries.ChatMessageResponsePayload{
		SessionId:      sessionId,
		Message:        aiResponse,
		HumanMessageId: humanId.String(),
		AiMessageId:    aiId.String(),
	})
	libraries.SendEventType(hub, client, libraries.WebSocketMessageTypeChatCompleted)
}
