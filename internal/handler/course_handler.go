package handler

import (
	"github.com/gofiber/fiber/v2"

	"course-compass/internal/dto"
	"course-compass/internal/middleware"
	"course-compass/internal/service"
	"course-compass/internal/validation"
)

// CourseHandler handles course catalog and extraction requests
type CourseHandler struct {
	service   service.CourseService
	validator *validation.Validator
}

func NewCourseHandler(service service.CourseService, validator *validation.Validator) *CourseHandler {
	return &CourseHandler{
		service:   service,
		validator: validator,
	}
}

// ExtractCourse godoc
// @Summary Extract course details
// @Description Asks the AI model to describe the course at a URL and schedules its milestones from today. Nothing is saved.
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body dto.ExtractCourseRequest true "Course URL"
// @Success 200 {object} dto.SuccessResponse{data=domain.CourseInfo}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /courses/extract [post]
func (h *CourseHandler) ExtractCourse(c *fiber.Ctx) error {
	var req dto.ExtractCourseRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	info, err := h.service.ExtractCourse(c.UserContext(), req.URL, req.HoursPerWeek)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Course details extracted", info)
}

// CreateCourse godoc
// @Summary Save a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body dto.CourseRequest true "Course"
// @Success 201 {object} dto.SuccessResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req dto.CourseRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	course, err := h.service.CreateCourse(c.UserContext(), middleware.UserID(c), req.ToDomainCourse())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Course created", dto.ToCourseResponse(course))
}

// ListCourses godoc
// @Summary List my courses
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.SuccessResponse{data=[]dto.CourseResponse}
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.service.ListCourses(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	out := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, dto.ToCourseResponse(course))
	}
	return respond(c, fiber.StatusOK, "", out)
}

// GetCourse godoc
// @Summary Get a course
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.CourseResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	course, err := h.service.GetCourse(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", dto.ToCourseResponse(course))
}

// UpdateCourse godoc
// @Summary Replace a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Param body body dto.CourseRequest true "Course"
// @Success 200 {object} dto.SuccessResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	var req dto.CourseRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	course, err := h.service.UpdateCourse(c.UserContext(), middleware.UserID(c), c.Params("id"), req.ToDomainCourse())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Course updated", dto.ToCourseResponse(course))
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags courses
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	if err := h.service.DeleteCourse(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateMilestone godoc
// @Summary Mark a milestone complete or incomplete
// @Description Recomputes course progress and status.
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Param index path int true "Milestone index, 0-based"
// @Param body body dto.UpdateMilestoneRequest true "Completion flag"
// @Success 200 {object} dto.SuccessResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/milestones/{index} [patch]
func (h *CourseHandler) UpdateMilestone(c *fiber.Ctx) error {
	var req dto.UpdateMilestoneRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	index, _ := c.Locals(middleware.ValidatedIndexKey).(int)
	course, err := h.service.SetMilestoneCompleted(c.UserContext(), middleware.UserID(c), c.Params("id"), index, req.Completed)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Milestone updated", dto.ToCourseResponse(course))
}
