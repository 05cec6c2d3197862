package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"course-compass/internal/logger"
)

const healthCheckTimeout = 3 * time.Second

// Pinger is anything the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler probes every named dependency; nil entries are skipped.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &HealthHandler{checks: active}
}

// Health godoc
// @Summary Health check
// @Description Reports the status of the database and cache.
// @Tags health
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 503 {object} dto.SuccessResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	status := fiber.StatusOK
	components := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			logger.Get().Warn("Health check failed", zap.String("component", name), zap.Error(err))
			components[name] = "down"
			status = fiber.StatusServiceUnavailable
			continue
		}
		components[name] = "up"
	}

	return c.Status(status).JSON(fiber.Map{
		"success":    status == fiber.StatusOK,
		"components": components,
	})
}
