package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"catalog-assistant/internal/models"

	"go.uber.org/zap"
)

const (
	summaryLength     = 200
	summarySuffix     = "..."
	uncategorizedName = "Other"
)

// KnowledgeBaseBuilder turns raw storefront products into a KnowledgeBase.
type KnowledgeBaseBuilder struct {
	now    func() time.Time
	logger *zap.Logger
}

func NewKnowledgeBaseBuilder(logger *zap.Logger) *KnowledgeBaseBuilder {
	return &KnowledgeBaseBuilder{
		now:    time.Now,
		logger: logger,
	}
}

// WithClock overrides the build timestamp source.
func (b *KnowledgeBaseBuilder) WithClock(now func() time.Time) *KnowledgeBaseBuilder {
	b.now = now
	return b
}

// Build processes every product into exactly one catalog entry. Incomplete
// records fall back to defaults; nothing in the batch is rejected.
func (b *KnowledgeBaseBuilder) Build(products []models.RawProduct) *models.KnowledgeBase {
	kb := &models.KnowledgeBase{}
	categorySet := make(map[string]struct{})
	incomplete := 0

	for i, product := range products {
		entry := b.buildEntry(product)
		entry.ID = uniqueID(&kb.ProductCatalog, string(product.ID), i)
		kb.ProductCatalog.Add(entry)

		if entry.Category != "" {
			categorySet[entry.Category] = struct{}{}
		}
		if missing := missingFields(product, entry); len(missing) > 0 {
			incomplete++
			b.logger.Debug("Product record incomplete, using defaults",
				zap.String("product_id", entry.ID),
				zap.Strings("missing", missing),
			)
		}
	}

	kb.Categories = make([]string, 0, len(categorySet))
	for category := range categorySet {
		kb.Categories = append(kb.Categories, category)
	}
	sort.Strings(kb.Categories)

	entries := kb.ProductCatalog.Entries()
	kb.PriceRanges = computePriceRanges(entries)
	kb.ProductRecommendations = assignRecommendationBuckets(entries)
	kb.FAQResponses = buildFAQResponses(kb.Categories)
	kb.CreatedAt = b.now().UTC()

	b.logger.Info("Knowledge base built",
		zap.Int("products", kb.ProductCatalog.Len()),
		zap.Int("categories", len(kb.Categories)),
		zap.Int("incomplete_records", incomplete),
	)
	return kb
}

func (b *KnowledgeBaseBuilder) buildEntry(product models.RawProduct) models.CatalogEntry {
	description := CleanHTML(product.BodyHTML)
	title := strings.TrimSpace(product.Title)
	category := strings.TrimSpace(product.ProductType)
	tags := ParseTags(product.Tags)
	features := ExtractFeatures(description)

	return models.CatalogEntry{
		Title:          title,
		Price:          productPrice(product),
		Tags:           tags,
		Category:       category,
		Features:       features,
		Summary:        truncateRunes(description, summaryLength, summarySuffix),
		SearchableText: searchableText(title, description, category, tags, features),
	}
}

// productPrice prefers the first variant, which is the storefront's canonical
// price, and falls back to a top-level price.
func productPrice(product models.RawProduct) models.Price {
	if len(product.Variants) > 0 {
		return product.Variants[0].Price
	}
	return product.Price
}

func searchableText(title, description, category string, tags, features []string) string {
	parts := make([]string, 0, 5)
	for _, part := range []string{title, description, category, strings.Join(tags, " "), strings.Join(features, " ")} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// uniqueID derives a catalog id from the raw id. Products without one get
// product-<position>; collisions get a numeric suffix.
func uniqueID(catalog *models.Catalog, rawID string, index int) string {
	id := strings.TrimSpace(rawID)
	if id == "" {
		id = fmt.Sprintf("product-%d", index+1)
	}
	if !catalog.Has(id) {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if !catalog.Has(candidate) {
			return candidate
		}
	}
}

func missingFields(product models.RawProduct, entry models.CatalogEntry) []string {
	var missing []string
	if strings.TrimSpace(string(product.ID)) == "" {
		missing = append(missing, "id")
	}
	if entry.Title == "" {
		missing = append(missing, "title")
	}
	if !entry.Price.Valid {
		missing = append(missing, "price")
	}
	return missing
}

func computePriceRanges(entries []models.CatalogEntry) map[string]models.PriceRange {
	type acc struct {
		min, max, sum float64
		n             int
	}
	groups := make(map[string]*acc)

	for _, e := range entries {
		if !e.Price.Valid {
			continue
		}
		category := e.Category
		if category == "" {
			category = uncategorizedName
		}
		g, ok := groups[category]
		if !ok {
			g = &acc{min: e.Price.Amount, max: e.Price.Amount}
			groups[category] = g
		}
		g.min = math.Min(g.min, e.Price.Amount)
		g.max = math.Max(g.max, e.Price.Amount)
		g.sum += e.Price.Amount
		g.n++
	}

	ranges := make(map[string]models.PriceRange, len(groups))
	for category, g := range groups {
		ranges[category] = models.PriceRange{
			Min: g.min,
			Max: g.max,
			Avg: math.Round(g.sum/float64(g.n)*100) / 100,
		}
	}
	return ranges
}
