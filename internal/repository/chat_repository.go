package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"course-compass/internal/domain"
	"course-compass/internal/repository/models"
	"course-compass/internal/util"
)

// ChatRepositoryImpl implements domain.ChatRepository
type ChatRepositoryImpl struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) *ChatRepositoryImpl {
	return &ChatRepositoryImpl{db: db}
}

func (r *ChatRepositoryImpl) AppendMessage(ctx context.Context, msg *domain.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = util.NewULID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	query := `INSERT INTO CHAT_MESSAGES (ID, USER_ID, ROLE, CONTENT, CREATED_AT) VALUES (:1, :2, :3, :4, :5)`
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, msg.ID, msg.UserID, msg.Role, msg.Content, msg.CreatedAt); err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// ListRecentMessages returns the newest limit messages in chronological order.
func (r *ChatRepositoryImpl) ListRecentMessages(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error) {
	var rows []models.ChatMessage
	// ULIDs sort by creation time, so ID breaks CREATED_AT ties.
	query := `SELECT ID, USER_ID, ROLE, CONTENT, CREATED_AT FROM CHAT_MESSAGES WHERE USER_ID = :1
	ORDER BY CREATED_AT DESC, ID DESC FETCH FIRST :2 ROWS ONLY`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	messages := make([]*domain.ChatMessage, len(rows))
	for i := range rows {
		m := rows[i]
		messages[len(rows)-1-i] = &domain.ChatMessage{
			ID:        m.ID,
			UserID:    m.UserID,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}
	return messages, nil
}

func (r *ChatRepositoryImpl) DeleteMessages(ctx context.Context, userID string) error {
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM CHAT_MESSAGES WHERE USER_ID = :1`, userID); err != nil {
		return fmt.Errorf("failed to delete chat messages: %w", err)
	}
	return nil
}
