package handler

import (
	"github.com/gofiber/fiber/v2"

	"course-compass/internal/middleware"
	"course-compass/internal/service"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(service service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard godoc
// @Summary Learning dashboard
// @Description Course progress, upcoming milestones and quiz statistics.
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.SuccessResponse{data=dto.DashboardResponse}
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	resp, err := h.service.GetDashboard(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", resp)
}
