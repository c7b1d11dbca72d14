package service

import (
	"context"
	"strings"

	"catalog-assistant/internal/models"
	"catalog-assistant/internal/repository"

	"go.uber.org/zap"
)

const defaultSearchLimit = 10

// CatalogService answers free-text lookups against the searchable text of
// each catalog entry.
type CatalogService struct {
	knowledgeRepo *repository.KnowledgeRepository
	logger        *zap.Logger
}

func NewCatalogService(knowledgeRepo *repository.KnowledgeRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		knowledgeRepo: knowledgeRepo,
		logger:        logger,
	}
}

// Search returns entries whose searchable text contains the whole query, in
// catalog order.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]models.ProductSuggestion, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	kb := s.knowledgeRepo.Current(ctx)
	if !kb.IsTrained() {
		return nil, ErrNotTrained
	}

	results := SimpleTextSearch(kb, query, limit)
	s.logger.Debug("Catalog search completed",
		zap.String("query", query),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// SimpleTextSearch is the substring fallback over searchable_text.
func SimpleTextSearch(kb *models.KnowledgeBase, query string, limit int) []models.ProductSuggestion {
	out := make([]models.ProductSuggestion, 0)
	if kb == nil {
		return out
	}
	query = strings.ToLower(query)
	for _, e := range kb.ProductCatalog.Entries() {
		if limit > 0 && len(out) >= limit {
			break
		}
		if strings.Contains(e.SearchableText, query) {
			out = append(out, models.SuggestionFromEntry(e))
		}
	}
	return out
}
