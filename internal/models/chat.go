package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatSession groups the ordered message history of one conversation.
type ChatSession struct {
	UUID      uuid.UUID `gorm:"type:uuid;primaryKey;" json:"uuid"`
	UserUUID  uuid.UUID `gorm:"not null;index" json:"user_uuid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage is append-only: rows are created once and never updated.
type ChatMessage struct {
	UUID        uuid.UUID `gorm:"type:uuid;primaryKey;" json:"uuid"`
	SessionUUID uuid.UUID `gorm:"not null;index" json:"session_uuid"`
	Content     string    `gorm:"not null" json:"content"`
	Role        Role      `gorm:"not null" json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}
