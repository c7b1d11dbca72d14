package handlers

import (
	"catalog-assistant/internal/dto"
	"catalog-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalogService        *service.CatalogService
	recommendationService *service.RecommendationService
	logger                *zap.Logger
}

func NewCatalogHandler(
	catalogService *service.CatalogService,
	recommendationService *service.RecommendationService,
	logger *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		catalogService:        catalogService,
		recommendationService: recommendationService,
		logger:                logger,
	}
}

// Search godoc
// @Summary Search products
// @Description Substring search over each product's searchable text
// @Tags products
// @Produce json
// @Param q query string true "Search text"
// @Param limit query int false "Limit" default(10)
// @Success 200 {object} dto.ProductListResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/products/search [get]
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	products, err := h.catalogService.Search(c.Context(), c.Query("q"), c.QueryInt("limit", 10))
	if err != nil {
		return errorJSON(c, statusFor(err), err.Error())
	}

	return c.JSON(dto.ProductListResponse{
		Success:  true,
		Count:    len(products),
		Products: products,
	})
}

// Recommendations godoc
// @Summary Products in a recommendation bucket
// @Tags products
// @Produce json
// @Param bucket path string true "sleep_related, wellness_related, comfort_related, budget_friendly or premium"
// @Param limit query int false "Limit, 0 for all" default(0)
// @Success 200 {object} dto.ProductListResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/products/recommendations/{bucket} [get]
func (h *CatalogHandler) Recommendations(c *fiber.Ctx) error {
	products, err := h.recommendationService.ProductsInBucket(c.Context(), c.Params("bucket"), c.QueryInt("limit", 0))
	if err != nil {
		return errorJSON(c, statusFor(err), err.Error())
	}

	return c.JSON(dto.ProductListResponse{
		Success:  true,
		Count:    len(products),
		Products: products,
	})
}
