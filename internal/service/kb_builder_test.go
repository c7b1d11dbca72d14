package service

import (
	"fmt"
	"strings"
	"testing"

	"catalog-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeBaseBuilder_Build(t *testing.T) {
	kb := trainedKnowledgeBase()

	require.Equal(t, 4, kb.ProductCatalog.Len())
	assert.Equal(t, []string{"Bedding", "Jewelry", "Wellness"}, kb.Categories)
	assert.Equal(t, fixedBuildTime, kb.CreatedAt)

	pillow, ok := kb.ProductCatalog.Get("101")
	require.True(t, ok)
	assert.Equal(t, "Memory Foam Pillow", pillow.Title)
	assert.Equal(t, models.NewPrice(25), pillow.Price)
	assert.Equal(t, []string{"sleep", "pillow"}, pillow.Tags)
	assert.Equal(t, "Bedding", pillow.Category)
	assert.Equal(t, []string{"memory foam", "breathable", "ergonomic", "soft"}, pillow.Features)
	assert.Equal(t, "Ergonomic memory foam pillow with a soft, breathable cover.", pillow.Summary)
	assert.Contains(t, pillow.SearchableText, "memory foam pillow")
	assert.Contains(t, pillow.SearchableText, "bedding")
	assert.Equal(t, strings.ToLower(pillow.SearchableText), pillow.SearchableText)

	assert.Equal(t, map[string]models.PriceRange{
		"Bedding":  {Min: 25, Max: 150, Avg: 87.5},
		"Jewelry":  {Min: 10, Max: 10, Avg: 10},
		"Wellness": {Min: 60, Max: 60, Avg: 60},
	}, kb.PriceRanges)

	assert.Equal(t, map[string][]string{
		models.BucketSleepRelated:    {"101", "104"},
		models.BucketWellnessRelated: {"102"},
		models.BucketComfortRelated:  {"101"},
		models.BucketBudgetFriendly:  {"101", "103"},
		models.BucketPremium:         {"104"},
	}, kb.ProductRecommendations)

	assert.Equal(t, []string{
		TopicDiffuserCare, TopicJewelryCare, TopicPillowCare,
		TopicProductCare, TopicReturnPolicy, TopicShippingInfo, TopicWarranty,
	}, kb.FAQTopics())
}

func TestKnowledgeBaseBuilder_MalformedRecordsDegrade(t *testing.T) {
	products := []models.RawProduct{
		{},
		{ID: "7", Title: "Plain Tee", ProductType: "Apparel", Price: models.ParsePrice("30")},
		{ID: "7", Title: "Plain Tee Copy", Variants: []models.RawVariant{{Price: models.ParsePrice("N/A")}}},
		{ID: "8", Title: "Mystery Box", Tags: models.TagsFromList([]string{" surprise ", ""}), Price: models.ParsePrice("120")},
		{Title: "No Id Either"},
	}

	kb := newTestBuilder().Build(products)

	require.Equal(t, len(products), kb.ProductCatalog.Len(), "every input yields one entry")
	var ids []string
	for _, e := range kb.ProductCatalog.Entries() {
		ids = append(ids, e.ID)
		assert.NotNil(t, e.Tags)
		assert.NotNil(t, e.Features)
	}
	assert.Equal(t, []string{"product-1", "7", "7-2", "8", "product-5"}, ids)

	empty, _ := kb.ProductCatalog.Get("product-1")
	assert.Equal(t, "", empty.Title)
	assert.False(t, empty.Price.Valid)
	assert.Equal(t, "", empty.Summary)

	tee, _ := kb.ProductCatalog.Get("7")
	assert.Equal(t, models.NewPrice(30), tee.Price, "top-level price used without variants")

	dup, _ := kb.ProductCatalog.Get("7-2")
	assert.False(t, dup.Price.Valid)

	box, _ := kb.ProductCatalog.Get("8")
	assert.Equal(t, []string{"surprise"}, box.Tags)

	assert.Equal(t, []string{"Apparel"}, kb.Categories)
	assert.Equal(t, map[string]models.PriceRange{
		"Apparel": {Min: 30, Max: 30, Avg: 30},
		"Other":   {Min: 120, Max: 120, Avg: 120},
	}, kb.PriceRanges)
	assert.Equal(t, []string{"7"}, kb.ProductRecommendations[models.BucketBudgetFriendly],
		"products without a price are never budget friendly")
	assert.Contains(t, kb.FAQResponses, TopicSizingGuide)
}

func TestKnowledgeBaseBuilder_EmptyInput(t *testing.T) {
	kb := newTestBuilder().Build(nil)

	assert.False(t, kb.IsTrained())
	assert.Empty(t, kb.Categories)
	assert.Empty(t, kb.PriceRanges)
	for _, bucket := range models.RecommendationBuckets {
		assert.NotNil(t, kb.ProductRecommendations[bucket])
	}
	assert.Len(t, kb.FAQResponses, len(baseFAQResponses))
}

func TestKnowledgeBaseBuilder_SummaryTruncation(t *testing.T) {
	long := strings.Repeat("word ", 100)
	kb := newTestBuilder().Build([]models.RawProduct{
		rawProduct("1", "Long", "5", "", "", "<p>"+long+"hypoallergenic</p>"),
	})

	entry, _ := kb.ProductCatalog.Get("1")
	assert.Equal(t, 203, len([]rune(entry.Summary)))
	assert.True(t, strings.HasSuffix(entry.Summary, "..."))
	assert.Equal(t, []string{"hypoallergenic"}, entry.Features, "features use the full description")
	assert.Contains(t, entry.SearchableText, "hypoallergenic")
}

func TestKnowledgeBaseBuilder_CatalogSizeMatchesInput(t *testing.T) {
	for _, n := range []int{0, 1, 5, 50} {
		t.Run(fmt.Sprintf("%d products", n), func(t *testing.T) {
			products := make([]models.RawProduct, n)
			for i := range products {
				products[i] = models.RawProduct{ID: models.ProductID(fmt.Sprintf("%d", i%3))}
			}
			kb := newTestBuilder().Build(products)
			assert.Equal(t, n, kb.ProductCatalog.Len())
		})
	}
}

func TestBuildFAQResponses_Deterministic(t *testing.T) {
	categories := []string{"Home Bedding", "Apparel"}
	first := buildFAQResponses(categories)
	second := buildFAQResponses(categories)

	assert.Equal(t, first, second)
	assert.Contains(t, first, TopicPillowCare)
	assert.Contains(t, first, TopicSizingGuide)
	assert.NotContains(t, first, TopicJewelryCare)
	for topic := range baseFAQResponses {
		assert.Contains(t, first, topic)
	}
}
