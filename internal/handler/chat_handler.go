package handler

import (
	"github.com/gofiber/fiber/v2"

	"course-compass/internal/dto"
	"course-compass/internal/middleware"
	"course-compass/internal/service"
	"course-compass/internal/validation"
)

type ChatHandler struct {
	service   service.ChatService
	validator *validation.Validator
}

func NewChatHandler(service service.ChatService, validator *validation.Validator) *ChatHandler {
	return &ChatHandler{service: service, validator: validator}
}

// SendMessage godoc
// @Summary Talk to the study assistant
// @Tags chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body dto.ChatRequest true "Message"
// @Success 200 {object} dto.SuccessResponse{data=dto.ChatMessageResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	reply, err := h.service.SendMessage(c.UserContext(), middleware.UserID(c), req.Message)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", dto.ToChatMessageResponse(reply))
}

// GetHistory godoc
// @Summary Chat history
// @Description Oldest first.
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum number of messages (1-100)"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.ChatMessageResponse}
// @Router /chat/history [get]
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	limit, _ := c.Locals(middleware.ValidatedLimitKey).(int)
	messages, err := h.service.GetHistory(c.UserContext(), middleware.UserID(c), limit)
	if err != nil {
		return err
	}
	out := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, dto.ToChatMessageResponse(m))
	}
	return respond(c, fiber.StatusOK, "", out)
}

// ClearHistory godoc
// @Summary Delete chat history
// @Tags chat
// @Security ApiKeyAuth
// @Success 204
// @Router /chat/history [delete]
func (h *ChatHandler) ClearHistory(c *fiber.Ctx) error {
	if err := h.service.ClearHistory(c.UserContext(), middleware.UserID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
