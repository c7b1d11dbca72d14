package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-assistant/internal/models"
	"catalog-assistant/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSource struct {
	products []models.RawProduct
	err      error
	calls    int
}

func (s *stubSource) FetchProducts(context.Context) ([]models.RawProduct, error) {
	s.calls++
	return s.products, s.err
}

func newTestTrainingService(t *testing.T, source ProductSource) (*TrainingService, *repository.KnowledgeRepository) {
	t.Helper()
	repo := newTestRepo(t)
	return NewTrainingService(source, newTestBuilder(), repo, zap.NewNop()), repo
}

func TestTrainingService_BuildAndSave(t *testing.T) {
	svc, repo := newTestTrainingService(t, nil)
	ctx := context.Background()

	assert.Equal(t, false, svc.Status(ctx).IsTrained)

	resp, err := svc.BuildAndSave(ctx, sampleProducts())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 4, resp.ProcessedCount)
	assert.Equal(t, []string{"Bedding", "Jewelry", "Wellness"}, resp.Categories)

	status := svc.Status(ctx)
	assert.True(t, status.IsTrained)
	assert.Equal(t, 4, status.ProductsCount)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.ProductsCount)
	assert.Equal(t, resp.Categories, summary.Categories)
	assert.Contains(t, summary.FAQTopics, TopicShippingInfo)
	assert.Equal(t, fixedBuildTime.Format(time.RFC3339), summary.CreatedAt)

	persisted, ok := repo.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, 4, persisted.ProductCatalog.Len())
}

func TestTrainingService_RetrainReplacesWholesale(t *testing.T) {
	svc, _ := newTestTrainingService(t, nil)
	ctx := context.Background()

	_, err := svc.BuildAndSave(ctx, sampleProducts())
	require.NoError(t, err)
	_, err = svc.BuildAndSave(ctx, []models.RawProduct{rawProduct("9", "Candle", "5", "Home", "", "")})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ProductsCount)
	assert.Equal(t, []string{"Home"}, summary.Categories)
}

func TestTrainingService_EmptyInput(t *testing.T) {
	svc, _ := newTestTrainingService(t, nil)

	_, err := svc.BuildAndSave(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoProducts)

	_, err = svc.Summary(context.Background())
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestTrainingService_FetchAndTrain(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		source := &stubSource{products: sampleProducts()}
		svc, _ := newTestTrainingService(t, source)

		resp, err := svc.FetchAndTrain(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4, resp.ProcessedCount)
		assert.Equal(t, 1, source.calls)
	})

	t.Run("upstream failure", func(t *testing.T) {
		cause := errors.New("connection refused")
		svc, _ := newTestTrainingService(t, &stubSource{err: cause})

		_, err := svc.FetchAndTrain(context.Background())
		assert.ErrorIs(t, err, ErrUpstreamFetch)
		assert.ErrorIs(t, err, cause)
		assert.False(t, svc.Status(context.Background()).IsTrained)
	})

	t.Run("no products is not a successful run", func(t *testing.T) {
		svc, _ := newTestTrainingService(t, &stubSource{products: []models.RawProduct{}})

		_, err := svc.FetchAndTrain(context.Background())
		assert.ErrorIs(t, err, ErrUpstreamFetch)
		assert.ErrorIs(t, err, ErrNoProducts)
	})

	t.Run("no source", func(t *testing.T) {
		svc, _ := newTestTrainingService(t, nil)

		_, err := svc.FetchAndTrain(context.Background())
		assert.ErrorIs(t, err, ErrUpstreamFetch)
	})
}

func TestTrainingService_PersistenceFailure(t *testing.T) {
	repo := repository.NewKnowledgeRepository("/dev/null/knowledge_base.json", repository.NewKnowledgeState(), zap.NewNop())
	svc := NewTrainingService(nil, newTestBuilder(), repo, zap.NewNop())

	_, err := svc.BuildAndSave(context.Background(), sampleProducts())
	assert.ErrorIs(t, err, ErrPersistence)
	assert.False(t, svc.Status(context.Background()).IsTrained)
}
