package dto

import (
	"encoding/json"

	"catalog-assistant/internal/models"
)

type TrainingResponse struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	ProcessedCount int      `json:"processed_count"`
	Categories     []string `json:"categories"`
}

type StatusResponse struct {
	IsTrained     bool `json:"is_trained"`
	ProductsCount int  `json:"products_count"`
}

type SummaryResponse struct {
	ProductsCount int      `json:"products_count"`
	Categories    []string `json:"categories"`
	FAQTopics     []string `json:"faq_topics"`
	CreatedAt     string   `json:"created_at"`
}

type ProductListResponse struct {
	Success  bool                       `json:"success"`
	Count    int                        `json:"count"`
	Products []models.ProductSuggestion `json:"products"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	IsTrained     bool   `json:"is_trained"`
	ProductsCount int    `json:"products_count"`
}

// StorefrontProductsResponse carries product objects untouched from the storefront API.
type StorefrontProductsResponse struct {
	Success  bool              `json:"success"`
	Products []json.RawMessage `json:"products,omitempty"`
	Error    string            `json:"error,omitempty"`
}
