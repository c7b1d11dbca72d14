package handlers

import (
	"catalog-assistant/internal/models"
	"catalog-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TrainingHandler struct {
	trainingService *service.TrainingService
	logger          *zap.Logger
}

func NewTrainingHandler(trainingService *service.TrainingService, logger *zap.Logger) *TrainingHandler {
	return &TrainingHandler{
		trainingService: trainingService,
		logger:          logger,
	}
}

// ProcessProducts godoc
// @Summary Train from the storefront
// @Description Fetch every product from the storefront and rebuild the knowledge base
// @Tags training
// @Produce json
// @Success 200 {object} dto.TrainingResponse
// @Failure 500 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/training/process-products [post]
func (h *TrainingHandler) ProcessProducts(c *fiber.Ctx) error {
	resp, err := h.trainingService.FetchAndTrain(c.Context())
	if err != nil {
		h.logger.Error("Training from storefront failed", zap.Error(err))
		return errorJSON(c, statusFor(err), err.Error())
	}

	return c.JSON(resp)
}

// TrainProducts godoc
// @Summary Train from posted products
// @Description Rebuild the knowledge base from raw products in the request body, either a list or {"products": [...]}
// @Tags training
// @Accept json
// @Produce json
// @Param request body []models.RawProduct true "Raw products"
// @Success 200 {object} dto.TrainingResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/training/products [post]
func (h *TrainingHandler) TrainProducts(c *fiber.Ctx) error {
	products, err := models.DecodeRawProducts(c.Body())
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.trainingService.BuildAndSave(c.Context(), products)
	if err != nil {
		h.logger.Error("Training from posted products failed", zap.Error(err))
		return errorJSON(c, statusFor(err), err.Error())
	}

	return c.JSON(resp)
}

// Status godoc
// @Summary Training status
// @Tags training
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /api/training/status [get]
func (h *TrainingHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.trainingService.Status(c.Context()))
}

// Summary godoc
// @Summary Knowledge base summary
// @Tags training
// @Produce json
// @Success 200 {object} dto.SummaryResponse
// @Failure 404 {object} map[string]string
// @Router /api/training/summary [get]
func (h *TrainingHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.trainingService.Summary(c.Context())
	if err != nil {
		return errorJSON(c, statusFor(err), err.Error())
	}

	return c.JSON(summary)
}
