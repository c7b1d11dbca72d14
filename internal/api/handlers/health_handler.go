package handlers

import (
	"catalog-assistant/internal/dto"
	"catalog-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	trainingService *service.TrainingService
}

func NewHealthHandler(trainingService *service.TrainingService) *HealthHandler {
	return &HealthHandler{trainingService: trainingService}
}

// Root godoc
// @Summary Liveness check
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.SendString("Backend is running!")
}

// Health godoc
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := h.trainingService.Status(c.Context())
	return c.JSON(dto.HealthResponse{
		Status:        "ok",
		IsTrained:     status.IsTrained,
		ProductsCount: status.ProductsCount,
	})
}
