package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"course-compass/internal/domain"
	"course-compass/internal/logger"
)

const (
	chatHistoryTurns = 20
	maxCoursesInHint = 10
)

// ChatService runs the course assistant conversation.
type ChatService interface {
	SendMessage(ctx context.Context, userID, message string) (*domain.ChatMessage, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error)
	ClearHistory(ctx context.Context, userID string) error
}

type chatServiceImpl struct {
	generator  domain.TextGenerator
	chatRepo   domain.ChatRepository
	courseRepo domain.CourseRepository
	txManager  domain.TransactionManager
}

func NewChatService(generator domain.TextGenerator, chatRepo domain.ChatRepository, courseRepo domain.CourseRepository, txManager domain.TransactionManager) ChatService {
	return &chatServiceImpl{
		generator:  generator,
		chatRepo:   chatRepo,
		courseRepo: courseRepo,
		txManager:  txManager,
	}
}

// SendMessage answers message in the context of the user's recent history and
// courses. Both turns are stored only when the model answered.
func (s *chatServiceImpl) SendMessage(ctx context.Context, userID, message string) (*domain.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("message")}
	}

	history, err := s.chatRepo.ListRecentMessages(ctx, userID, chatHistoryTurns)
	if err != nil {
		return nil, domain.NewInternalError("failed to load chat history", err)
	}
	courses, err := s.courseRepo.ListCoursesByUser(ctx, userID)
	if err != nil {
		// The assistant still works without course context.
		logger.Get().Warn("Chat continues without course context", zap.String("userID", userID), zap.Error(err))
		courses = nil
	}

	turns := make([]domain.ChatTurn, 0, len(history)+2)
	turns = append(turns, domain.ChatTurn{Role: domain.ChatRoleSystem, Content: BuildAssistantPrompt(courses)})
	for _, m := range history {
		turns = append(turns, domain.ChatTurn{Role: m.Role, Content: m.Content})
	}
	turns = append(turns, domain.ChatTurn{Role: domain.ChatRoleUser, Content: message})

	reply, err := s.generator.Chat(ctx, turns)
	if err != nil {
		return nil, err
	}
	reply = strings.TrimSpace(reply)

	userMsg := &domain.ChatMessage{UserID: userID, Role: domain.ChatRoleUser, Content: message}
	assistantMsg := &domain.ChatMessage{UserID: userID, Role: domain.ChatRoleAssistant, Content: reply}
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.chatRepo.AppendMessage(txCtx, userMsg); err != nil {
			return err
		}
		return s.chatRepo.AppendMessage(txCtx, assistantMsg)
	})
	if err != nil {
		return nil, domain.NewInternalError("failed to save chat messages", err)
	}
	return assistantMsg, nil
}

func (s *chatServiceImpl) GetHistory(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error) {
	if limit <= 0 || limit > maxResultLimit {
		limit = maxResultLimit
	}
	messages, err := s.chatRepo.ListRecentMessages(ctx, userID, limit)
	if err != nil {
		return nil, domain.NewInternalError("failed to load chat history", err)
	}
	return messages, nil
}

func (s *chatServiceImpl) ClearHistory(ctx context.Context, userID string) error {
	if err := s.chatRepo.DeleteMessages(ctx, userID); err != nil {
		return domain.NewInternalError("failed to clear chat history", err)
	}
	return nil
}

// BuildAssistantPrompt is the system message naming the user's courses.
func BuildAssistantPrompt(courses []*domain.Course) string {
	var sb strings.Builder
	sb.WriteString("You are Course Compass, a friendly study assistant. ")
	sb.WriteString("Help the learner plan, understand and finish their online courses. ")
	sb.WriteString("Keep answers concise and practical.\n")

	if len(courses) == 0 {
		sb.WriteString("The learner has not saved any courses yet.")
		return sb.String()
	}

	sb.WriteString("The learner is enrolled in:\n")
	for i, c := range courses {
		if i == maxCoursesInHint {
			sb.WriteString(fmt.Sprintf("- and %d more\n", len(courses)-maxCoursesInHint))
			break
		}
		line := fmt.Sprintf("- %s (%d%% complete", c.Name, c.Progress)
		if c.Provider != "" {
			line += ", " + c.Provider
		}
		sb.WriteString(line + ")\n")
	}
	return sb.String()
}
