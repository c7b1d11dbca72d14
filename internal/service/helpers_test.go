package service

import (
	"path/filepath"
	"testing"
	"time"

	"catalog-assistant/internal/models"
	"catalog-assistant/internal/repository"

	"go.uber.org/zap"
)

var fixedBuildTime = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestBuilder() *KnowledgeBaseBuilder {
	return NewKnowledgeBaseBuilder(zap.NewNop()).WithClock(func() time.Time { return fixedBuildTime })
}

func newTestRepo(t *testing.T) *repository.KnowledgeRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	return repository.NewKnowledgeRepository(path, repository.NewKnowledgeState(), zap.NewNop())
}

func rawProduct(id, title, price, productType, tags, body string) models.RawProduct {
	p := models.RawProduct{
		ID:          models.ProductID(id),
		Title:       title,
		Tags:        models.TagsFromString(tags),
		ProductType: productType,
		BodyHTML:    body,
	}
	if price != "" {
		p.Variants = []models.RawVariant{{Price: models.ParsePrice(price)}}
	}
	return p
}

func sampleProducts() []models.RawProduct {
	return []models.RawProduct{
		rawProduct("101", "Memory Foam Pillow", "25", "Bedding", "sleep, pillow",
			"<p>Ergonomic <b>memory foam</b> pillow with a soft, breathable cover.</p>"),
		rawProduct("102", "Lavender Aromatherapy Diffuser", "60", "Wellness", "aroma, gift",
			"<p>Portable diffuser for essential oil blends.</p>"),
		rawProduct("103", "Gold Plated Jhumka Earrings", "10", "Jewelry", "earrings, festive",
			"<p>Handmade, anti-tarnish and nickel free.</p>"),
		rawProduct("104", "Weighted Sleep Blanket", "150", "Bedding", "sleep, blanket",
			"<p>Premium cotton blanket for deep sleep.</p>"),
	}
}

func trainedKnowledgeBase() *models.KnowledgeBase {
	return newTestBuilder().Build(sampleProducts())
}
