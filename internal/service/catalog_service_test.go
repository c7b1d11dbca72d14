package service

import (
	"context"
	"testing"

	"catalog-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalogService_Search(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewCatalogService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Search(ctx, "pillow", 5)
	assert.ErrorIs(t, err, ErrNotTrained)

	require.NoError(t, repo.Save(ctx, trainedKnowledgeBase()))

	_, err = svc.Search(ctx, "   ", 5)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	results, err := svc.Search(ctx, "Memory Foam", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "101", results[0].ID)

	// matches category, tags and description text
	results, err = svc.Search(ctx, "bedding", 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = svc.Search(ctx, "bedding", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSimpleTextSearch_NilKnowledgeBase(t *testing.T) {
	assert.Empty(t, SimpleTextSearch(nil, "x", 3))
}

func TestRecommendationService_ProductsInBucket(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewRecommendationService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.ProductsInBucket(ctx, models.BucketPremium, 0)
	assert.ErrorIs(t, err, ErrNotTrained)

	require.NoError(t, repo.Save(ctx, trainedKnowledgeBase()))

	products, err := svc.ProductsInBucket(ctx, models.BucketSleepRelated, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"101", "104"}, []string{products[0].ID, products[1].ID})

	products, err = svc.ProductsInBucket(ctx, models.BucketBudgetFriendly, 1)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	_, err = svc.ProductsInBucket(ctx, "luxury", 0)
	assert.ErrorIs(t, err, ErrUnknownBucket)
}
