package dto

import (
	"time"

	"course-compass/internal/domain"
)

// ChatRequest is one user message to the assistant.
// @Description Request body for the chat assistant
type ChatRequest struct {
	Message string `json:"message" validate:"required,notblank,max=4000"`
}

// ChatMessageResponse is one stored turn.
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func ToChatMessageResponse(m *domain.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{ID: m.ID, Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt}
}
