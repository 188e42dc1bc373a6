package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liviin/homecare-api/internal/config"
	"github.com/liviin/homecare-api/internal/services"
	"gorm.io/gorm"
)

// HealthHandler handles the health endpoint
type HealthHandler struct {
	Cfg *config.Config
	DB  *gorm.DB
}

// Get handles GET /health
// @Summary Service health
// @Description Report database, authorizer, and messaging health
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Get(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
