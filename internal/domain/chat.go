package domain

import (
	"context"
	"time"
)

// Chat roles
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"
)

// ChatMessage is one persisted turn of a user's conversation with the assistant
type ChatMessage struct {
	ID        string
	UserID    string
	Role      string
	Content   string
	CreatedAt time.Time
}

// ChatRepository defines the interface for chat history persistence
type ChatRepository interface {
	AppendMessage(ctx context.Context, msg *ChatMessage) error
	ListRecentMessages(ctx context.Context, userID string, limit int) ([]*ChatMessage, error)
	DeleteMessages(ctx context.Context, userID string) error
}
