package handlers

import (
	"tvbank-assistant-backend/internal/models"
	"tvbank-assistant-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ChatHandler struct {
	chatRepo repo.ChatRepoInterface
}

func NewChatHandler(chatRepo repo.ChatRepoInterface) *ChatHandler {
	return &ChatHandler{chatRepo: chatRepo}
}

func callerUUID(c *fiber.Ctx) (uuid.UUID, bool) {
	raw, _ := c.Locals("user_id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// create a new conversation for the caller
func (h *ChatHandler) CreateSession(c *fiber.Ctx) error {
	userId, ok := callerUUID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user identity",
		})
	}

	session := &models.ChatSession{
		UUID:     uuid.New(),
		UserUUID: userId,
	}
	if err := h.chatRepo.CreateSession(session); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// list the caller's conversations, newest first
func (h *ChatHandler) GetSessions(c *fiber.Ctx) error {
	userId, ok := callerUUID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user identity",
		})
	}

	sessions, err := h.chatRepo.GetSessionsByUserId(userId)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get sessions",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"sessions": sessions,
	})
}

// get messages by session id
func (h *ChatHandler) GetMessagesBySessionId(c *fiber.Ctx) error {
	sessionId := c.Params("sessionId")

	sessionIdUUID, err := uuid.Parse(sessionId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID",
		})
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	messages, total, err := h.chatRepo.GetMessagesBySessionId(sessionIdUUID, page, pageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get messages",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"messages": messages,
		"total":    total,
	})
}
