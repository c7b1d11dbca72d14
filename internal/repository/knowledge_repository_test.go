package repository

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"catalog-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepo(t *testing.T) (*KnowledgeRepository, *KnowledgeState) {
	t.Helper()
	state := NewKnowledgeState()
	path := filepath.Join(t.TempDir(), "data", "knowledge_base.json")
	return NewKnowledgeRepository(path, state, zap.NewNop()), state
}

func sampleKnowledgeBase(n int) *models.KnowledgeBase {
	kb := &models.KnowledgeBase{
		Categories:  []string{"Bedding"},
		PriceRanges: map[string]models.PriceRange{"Bedding": {Min: 10, Max: 60, Avg: 31.67}},
		ProductRecommendations: map[string][]string{
			models.BucketSleepRelated:   {"1"},
			models.BucketBudgetFriendly: {},
		},
		FAQResponses: map[string]string{"shipping_info": "Ships in 3-5 days."},
		CreatedAt:    time.Date(2026, 10, 18, 9, 30, 0, 123456789, time.UTC),
	}
	for i := 1; i <= n; i++ {
		kb.ProductCatalog.Add(models.CatalogEntry{
			ID:             fmt.Sprintf("%d", i),
			Title:          fmt.Sprintf("Pillow %d", i),
			Price:          models.NewPrice(float64(i) * 10),
			Tags:           []string{"sleep"},
			Category:       "Bedding",
			Features:       []string{"soft"},
			Summary:        "A soft pillow",
			SearchableText: "pillow a soft pillow bedding sleep soft",
		})
	}
	return kb
}

func TestKnowledgeRepository_RoundTrip(t *testing.T) {
	repo, state := newTestRepo(t)
	ctx := context.Background()
	kb := sampleKnowledgeBase(3)

	require.NoError(t, repo.Save(ctx, kb))
	assert.Same(t, kb, state.Get())

	loaded, ok := repo.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, kb.ProductCatalog, loaded.ProductCatalog)
	assert.Equal(t, kb.Categories, loaded.Categories)
	assert.Equal(t, kb.PriceRanges, loaded.PriceRanges)
	assert.Equal(t, kb.ProductRecommendations, loaded.ProductRecommendations)
	assert.Equal(t, kb.FAQResponses, loaded.FAQResponses)
	assert.True(t, kb.CreatedAt.Equal(loaded.CreatedAt))

	raw, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"product_catalog"`)
	assert.Contains(t, string(raw), "\n    ")
}

func TestKnowledgeRepository_LoadAbsent(t *testing.T) {
	repo, state := newTestRepo(t)

	kb, ok := repo.Load(context.Background())
	assert.False(t, ok)
	assert.Nil(t, kb)
	assert.Nil(t, repo.Current(context.Background()))
	assert.Nil(t, state.Get())
}

func TestKnowledgeRepository_LoadCorrupt(t *testing.T) {
	repo, _ := newTestRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(repo.Path()), 0755))
	require.NoError(t, os.WriteFile(repo.Path(), []byte(`{"product_catalog": [`), 0644))

	kb, ok := repo.Load(context.Background())
	assert.False(t, ok)
	assert.Nil(t, kb)
}

func TestKnowledgeRepository_FailedSaveKeepsPrevious(t *testing.T) {
	repo, state := newTestRepo(t)
	ctx := context.Background()
	first := sampleKnowledgeBase(2)
	require.NoError(t, repo.Save(ctx, first))

	before, err := os.ReadFile(repo.Path())
	require.NoError(t, err)

	broken := sampleKnowledgeBase(5)
	broken.PriceRanges["Bedding"] = models.PriceRange{Avg: math.NaN()}
	assert.Error(t, repo.Save(ctx, broken))

	after, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Same(t, first, state.Get())

	entries, err := os.ReadDir(filepath.Dir(repo.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestKnowledgeRepository_SaveUnwritableLocation(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	state := NewKnowledgeState()
	repo := NewKnowledgeRepository(filepath.Join(blocker, "knowledge_base.json"), state, zap.NewNop())

	assert.Error(t, repo.Save(context.Background(), sampleKnowledgeBase(1)))
	assert.Nil(t, state.Get())
}

func TestKnowledgeRepository_CurrentCachesFirstLoad(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, sampleKnowledgeBase(1)))

	// A fresh process: new state cell over the same document.
	fresh := NewKnowledgeRepository(repo.Path(), NewKnowledgeState(), zap.NewNop())
	first := fresh.Current(ctx)
	require.NotNil(t, first)
	assert.Equal(t, 1, first.ProductCatalog.Len())

	require.NoError(t, os.Remove(repo.Path()))
	assert.Same(t, first, fresh.Current(ctx), "cached copy served without disk round-trip")
}

func TestKnowledgeRepository_ConcurrentSavesAndReads(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, sampleKnowledgeBase(1)))

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, repo.Save(ctx, sampleKnowledgeBase(n)))
		}(i)
		go func() {
			defer wg.Done()
			kb, ok := repo.Load(ctx)
			if assert.True(t, ok, "reader must never observe a partial document") {
				assert.True(t, kb.IsTrained())
			}
		}()
	}
	wg.Wait()

	loaded, ok := repo.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, repo.Current(ctx).ProductCatalog.Len(), loaded.ProductCatalog.Len())
}
