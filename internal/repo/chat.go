package repo

import (
	"time"

	llmHandlers "tvbank-assistant-backend/internal/llm_handlers"
	"tvbank-assistant-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatRepo struct {
	db *gorm.DB
}

type ChatRepoInterface interface {
	CreateSession(session *models.ChatSession) error
	GetSession(sessionId uuid.UUID) (*models.ChatSession, error)
	GetSessionsByUserId(userId uuid.UUID) ([]models.ChatSession, error)
	GetMessagesBySessionId(sessionId uuid.UUID, page int, pageSize int, fields ...string) ([]models.ChatMessage, int64, error)
	CreateHumanAndAiMessages(sessionUUID uuid.UUID, humanMessage string, aiMessage string) (uuid.UUID, uuid.UUID, error)
	GetChatHistory(sessionId uuid.UUID, size int) ([]llmHandlers.Message, error)
	GetLatestMessages(sessionId uuid.UUID, limit int, fields ...string) ([]models.ChatMessage, error)
}

func NewChatRepository(db *gorm.DB) ChatRepoInterface {
	return &ChatRepo{db: db}
}

func (r *ChatRepo) CreateSession(session *models.ChatSession) error {
	if session.UUID == uuid.Nil {
		session.UUID = uuid.New()
	}
	return r.db.Create(session).Error
}

func (r *ChatRepo) GetSession(sessionId uuid.UUID) (*models.ChatSession, error) {
	var session models.ChatSession
	if err := r.db.First(&session, "uuid = ?", sessionId).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ChatRepo) GetSessionsByUserId(userId uuid.UUID) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	err := r.db.Where("user_uuid = ?", userId).Order("created_at desc").Find(&sessions).Error
	return sessions, err
}

// signature returns messages, totalCount, error
func (r *ChatRepo) GetMessagesBySessionId(sessionId uuid.UUID, page int, pageSize int, fields ...string) ([]models.ChatMessage, int64, error) {
	var messages []models.ChatMessage
	var total int64

	// sane defaults + cap
	if page < 1 {
		page = 1
	}
	const DefaultPageSize = 20
	const MaxPageSize = 100
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	offset := (page - 1) * pageSize

	base := r.db.Model(&models.ChatMessage{}).Where("session_uuid = ?", sessionId)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base
	if len(fields) > 0 {
		query = query.Select(fields)
	}

	if err := query.Order("created_at asc").
		Limit(pageSize).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// CreateHumanAndAiMessages persists one full turn atomically. Messages are
// append-only; nothing here ever updates an existing row.
func (r *ChatRepo) CreateHumanAndAiMessages(sessionUUID uuid.UUID, humanMessage string, aiMessage string) (uuid.UUID, uuid.UUID, error) {
	humanMessageUUID := uuid.New()
	aiMessageUUID := uuid.New()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.ChatMessage{
			UUID:        humanMessageUUID,
			SessionUUID: sessionUUID,
			Content:     humanMessage,
			Role:        models.RoleUser,
			CreatedAt:   time.Now(),
		}).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.ChatMessage{
			UUID:        aiMessageUUID,
			SessionUUID: sessionUUID,
			Content:     aiMessage,
			Role:        models.RoleAssistant,
			CreatedAt:   time.Now().Add(time.Millisecond),
		}).Error; err != nil {
			return err
		}

		return nil
	})

	return humanMessageUUID, aiMessageUUID, err
}

// GetLatestMessages returns the newest messages of the session in
// chronological order: take the last N by created_at, then flip them back.
func (r *ChatRepo) GetLatestMessages(sessionId uuid.UUID, limit int, fields ...string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage

	// default + cap
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	query := r.db.Model(&models.ChatMessage{}).Where("session_uuid = ?", sessionId)

	if len(fields) > 0 {
		query = query.Select(fields)
	}

	err := query.Order("created_at DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, err
	}
	reverseMessages(messages)
	return messages, nil
}

func reverseMessages(messages []models.ChatMessage) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}

func (r *ChatRepo) GetChatHistory(sessionId uuid.UUID, size int) ([]llmHandlers.Message, error) {
	messages, err := r.GetLatestMessages(sessionId, size, "role", "content")
	if err != nil {
		return nil, err
	}

	chatHistoryMessages := []llmHandlers.Message{}
	for _, message := range messages {
		chatHistoryMessages = append(chatHistoryMessages, llmHandlers.Message{
			Role:    message.Role,
			Content: message.Content,
		})
	}

	return chatHistoryMessages, nil
}
