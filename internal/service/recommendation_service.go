package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"catalog-assistant/internal/models"
	"catalog-assistant/internal/repository"

	"go.uber.org/zap"
)

const (
	budgetPriceLimit  = 50.0
	premiumPriceFloor = 100.0
)

var (
	sleepTitleKeywords    = []string{"pillow", "sleep", "bed", "blanket"}
	wellnessTitleKeywords = []string{"wellness", "therapy", "diffuser", "aromatherapy"}
	comfortFeatures       = []string{"comfort", "soft", "memory foam"}
)

// bucketRules are independent: an entry may satisfy any number of them.
var bucketRules = map[string]func(models.CatalogEntry) bool{
	models.BucketSleepRelated: func(e models.CatalogEntry) bool {
		return containsAny(strings.ToLower(e.Title), sleepTitleKeywords)
	},
	models.BucketWellnessRelated: func(e models.CatalogEntry) bool {
		return containsAny(strings.ToLower(e.Title), wellnessTitleKeywords)
	},
	models.BucketComfortRelated: func(e models.CatalogEntry) bool {
		for _, f := range e.Features {
			if slices.Contains(comfortFeatures, f) {
				return true
			}
		}
		return false
	},
	models.BucketBudgetFriendly: func(e models.CatalogEntry) bool {
		return e.Price.Valid && e.Price.Amount < budgetPriceLimit
	},
	models.BucketPremium: func(e models.CatalogEntry) bool {
		return e.Price.Valid && e.Price.Amount > premiumPriceFloor
	},
}

// assignRecommendationBuckets returns every bucket, each listing ids in catalog order.
func assignRecommendationBuckets(entries []models.CatalogEntry) map[string][]string {
	buckets := make(map[string][]string, len(models.RecommendationBuckets))
	for _, name := range models.RecommendationBuckets {
		buckets[name] = []string{}
	}
	for _, e := range entries {
		for _, name := range models.RecommendationBuckets {
			if bucketRules[name](e) {
				buckets[name] = append(buckets[name], e.ID)
			}
		}
	}
	return buckets
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// RecommendationService serves the precomputed recommendation buckets.
type RecommendationService struct {
	knowledgeRepo *repository.KnowledgeRepository
	logger        *zap.Logger
}

func NewRecommendationService(knowledgeRepo *repository.KnowledgeRepository, logger *zap.Logger) *RecommendationService {
	return &RecommendationService{
		knowledgeRepo: knowledgeRepo,
		logger:        logger,
	}
}

// ProductsInBucket lists up to limit products of a bucket; limit <= 0 means all.
func (s *RecommendationService) ProductsInBucket(ctx context.Context, bucket string, limit int) ([]models.ProductSuggestion, error) {
	if !slices.Contains(models.RecommendationBuckets, bucket) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBucket, bucket)
	}

	kb := s.knowledgeRepo.Current(ctx)
	if !kb.IsTrained() {
		return nil, ErrNotTrained
	}

	ids := kb.ProductRecommendations[bucket]
	out := make([]models.ProductSuggestion, 0, len(ids))
	for _, id := range ids {
		if limit > 0 && len(out) >= limit {
			break
		}
		entry, ok := kb.ProductCatalog.Get(id)
		if !ok {
			s.logger.Warn("Recommendation refers to unknown product",
				zap.String("bucket", bucket),
				zap.String("product_id", id),
			)
			continue
		}
		out = append(out, models.SuggestionFromEntry(entry))
	}
	return out, nil
}
