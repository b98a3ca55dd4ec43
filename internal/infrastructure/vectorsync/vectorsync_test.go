package vectorsync

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DRSN-tech/recommender-backend/internal/domain"
	"github.com/DRSN-tech/recommender-backend/internal/recommender"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...any)            {}
func (noopLogger) Infof(format string, args ...any)             {}
func (noopLogger) Warnf(format string, args ...any)             {}
func (noopLogger) Errorf(err error, format string, args ...any) {}

type fakeEmbeddings struct {
	mu       sync.Mutex
	points   []domain.Embedding
	failures int
	searches int
}

func (f *fakeEmbeddings) Upsert(ctx context.Context, vectors []domain.Embedding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("temporarily unavailable")
	}
	f.points = append(f.points, vectors...)
	return nil
}

func (f *fakeEmbeddings) SearchSimilar(ctx context.Context, vector []float32, limit uint64, excludeProductID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches++
	return nil, nil
}

func testEngine(t *testing.T) *recommender.Engine {
	t.Helper()

	products := []domain.Product{
		{ID: "P001", Category: "Clothing", Brand: "FabIndia", Features: "cotton kurta summer"},
		{ID: "P002", Category: "Clothing", Brand: "Levis", Features: "denim jacket winter"},
		{ID: "P003", Category: "Footwear", Brand: "Bata", Features: "waterproof boots monsoon"},
	}

	engine, err := recommender.NewEngine(products, nil)
	require.NoError(t, err)
	return engine
}

func TestSyncUploadsAllProducts(t *testing.T) {
	engine := testEngine(t)
	repo := &fakeEmbeddings{}

	require.NoError(t, NewSyncer(engine, repo, noopLogger{}).Sync(context.Background()))

	require.Len(t, repo.points, 3)
	dim := engine.CombinedSpace().Dim()
	for i, point := range repo.points {
		assert.Len(t, point.Vector, dim)
		assert.Equal(t, engine.Products()[i].ID, point.Payload["product_id"])
	}
	assert.Equal(t, 1, repo.searches)
}

func TestSyncRetriesTransientFailures(t *testing.T) {
	repo := &fakeEmbeddings{failures: 2}

	require.NoError(t, NewSyncer(testEngine(t), repo, noopLogger{}).Sync(context.Background()))
	assert.Len(t, repo.points, 3)
}

func TestPointIDIsDeterministic(t *testing.T) {
	assert.Equal(t, pointID("P001"), pointID("P001"))
	assert.NotEqual(t, pointID("P001"), pointID("P002"))
}
