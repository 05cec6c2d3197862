package handler

import (
	"github.com/gofiber/fiber/v2"

	"course-compass/internal/dto"
	"course-compass/internal/middleware"
	"course-compass/internal/service"
	"course-compass/internal/validation"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates multiple-choice questions with the AI model. At most 30 questions are produced; fewer may be returned.
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body dto.GenerateQuizRequest true "Quiz parameters"
// @Success 200 {object} dto.SuccessResponse{data=dto.GenerateQuizResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /quiz/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.service.GenerateQuiz(c.UserContext(), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Quiz generated", resp)
}

// SaveResult godoc
// @Summary Save a quiz result
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body dto.SaveQuizResultRequest true "Result"
// @Success 201 {object} dto.SuccessResponse{data=dto.QuizResultResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz/results [post]
func (h *QuizHandler) SaveResult(c *fiber.Ctx) error {
	var req dto.SaveQuizResultRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	result, err := h.service.SaveResult(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Quiz result saved", dto.ToQuizResultResponse(result))
}

// ListResults godoc
// @Summary List my quiz results
// @Description Most recent first.
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum number of results (1-100, default 20)"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.QuizResultResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /quiz/results [get]
func (h *QuizHandler) ListResults(c *fiber.Ctx) error {
	limit, _ := c.Locals(middleware.ValidatedLimitKey).(int)
	results, err := h.service.ListResults(c.UserContext(), middleware.UserID(c), limit)
	if err != nil {
		return err
	}
	out := make([]dto.QuizResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.ToQuizResultResponse(r))
	}
	return respond(c, fiber.StatusOK, "", out)
}
