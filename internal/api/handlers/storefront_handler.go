package handlers

import (
	"errors"

	"catalog-assistant/internal/dto"
	"catalog-assistant/pkg/shopify"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type StorefrontHandler struct {
	client *shopify.Client
	logger *zap.Logger
}

func NewStorefrontHandler(client *shopify.Client, logger *zap.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		client: client,
		logger: logger,
	}
}

// Products godoc
// @Summary Raw storefront products
// @Description Fetch the product list from Shopify, each product object passed through unmodified
// @Tags storefront
// @Produce json
// @Success 200 {object} dto.StorefrontProductsResponse
// @Failure 502 {object} dto.StorefrontProductsResponse
// @Failure 503 {object} dto.StorefrontProductsResponse
// @Router /api/shopify/products [get]
func (h *StorefrontHandler) Products(c *fiber.Ctx) error {
	products, err := h.client.FetchRawProducts(c.Context())
	if err != nil {
		h.logger.Error("Failed to fetch storefront products", zap.Error(err))
		status := fiber.StatusBadGateway
		if errors.Is(err, shopify.ErrMissingCredentials) {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(dto.StorefrontProductsResponse{Error: err.Error()})
	}

	return c.JSON(dto.StorefrontProductsResponse{
		Success:  true,
		Products: products,
	})
}
