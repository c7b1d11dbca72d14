package service

import (
	"context"
	"fmt"
	"time"

	"catalog-assistant/internal/dto"
	"catalog-assistant/internal/models"
	"catalog-assistant/internal/repository"

	"go.uber.org/zap"
)

// ProductSource supplies raw storefront products.
type ProductSource interface {
	FetchProducts(ctx context.Context) ([]models.RawProduct, error)
}

type TrainingService struct {
	source        ProductSource
	builder       *KnowledgeBaseBuilder
	knowledgeRepo *repository.KnowledgeRepository
	logger        *zap.Logger
}

func NewTrainingService(
	source ProductSource,
	builder *KnowledgeBaseBuilder,
	knowledgeRepo *repository.KnowledgeRepository,
	logger *zap.Logger,
) *TrainingService {
	return &TrainingService{
		source:        source,
		builder:       builder,
		knowledgeRepo: knowledgeRepo,
		logger:        logger,
	}
}

// BuildAndSave replaces the knowledge base with one built from products.
func (s *TrainingService) BuildAndSave(ctx context.Context, products []models.RawProduct) (*dto.TrainingResponse, error) {
	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	kb := s.builder.Build(products)
	if err := s.knowledgeRepo.Save(ctx, kb); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return &dto.TrainingResponse{
		Success:        true,
		Message:        fmt.Sprintf("Successfully processed %d products.", kb.ProductCatalog.Len()),
		ProcessedCount: kb.ProductCatalog.Len(),
		Categories:     kb.Categories,
	}, nil
}

// FetchAndTrain pulls the product list from the storefront and trains on it.
// An unreachable storefront or an empty product list is an ErrUpstreamFetch.
func (s *TrainingService) FetchAndTrain(ctx context.Context) (*dto.TrainingResponse, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: no product source configured", ErrUpstreamFetch)
	}

	started := time.Now()
	products, err := s.source.FetchProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, ErrNoProducts)
	}

	s.logger.Info("Fetched products from storefront",
		zap.Int("count", len(products)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return s.BuildAndSave(ctx, products)
}

func (s *TrainingService) Status(ctx context.Context) dto.StatusResponse {
	kb := s.knowledgeRepo.Current(ctx)
	if kb == nil {
		return dto.StatusResponse{}
	}
	return dto.StatusResponse{
		IsTrained:     kb.IsTrained(),
		ProductsCount: kb.ProductCatalog.Len(),
	}
}

func (s *TrainingService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	kb := s.knowledgeRepo.Current(ctx)
	if kb == nil {
		return nil, ErrNotTrained
	}

	categories := kb.Categories
	if categories == nil {
		categories = []string{}
	}
	return &dto.SummaryResponse{
		ProductsCount: kb.ProductCatalog.Len(),
		Categories:    categories,
		FAQTopics:     kb.FAQTopics(),
		CreatedAt:     kb.CreatedAt.Format(time.RFC3339),
	}, nil
}
