package vectorsync

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/recommender-backend/internal/domain"
	"github.com/DRSN-tech/recommender-backend/internal/recommender"
	"github.com/DRSN-tech/recommender-backend/internal/usecase"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/DRSN-tech/recommender-backend/pkg/jitter"
	"github.com/DRSN-tech/recommender-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
)

const (
	batchSize    = 128
	maxAttempts  = 5
	baseBackoff  = 200 * time.Millisecond
	maxBackoff   = 5 * time.Second
	jitterFactor = jitter.DefaultJitter
)

// Syncer зеркалирует TF-IDF векторы каталога во внешнее векторное
// хранилище после построения словаря.
type Syncer struct {
	engine *recommender.Engine
	repo   usecase.EmbeddingRepository
	logger logger.Logger
}

func NewSyncer(engine *recommender.Engine, repo usecase.EmbeddingRepository, logger logger.Logger) *Syncer {
	return &Syncer{
		engine: engine,
		repo:   repo,
		logger: logger,
	}
}

// Sync выгружает векторы всех товаров батчами. Словарь фиксируется на
// момент построения, поэтому версия словаря пишется в payload каждой точки.
func (s *Syncer) Sync(ctx context.Context) error {
	space := s.engine.CombinedSpace()
	products := s.engine.Products()
	version := fmt.Sprintf("tfidf-v1-dim%d", space.Dim())

	batch := make([]domain.Embedding, 0, batchSize)
	for i, product := range products {
		vector, err := space.DocVector(i).Dense(space.Dim())
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}

		batch = append(batch, *domain.NewEmbedding(
			pointID(product.ID),
			vector,
			domain.NewPayload(product.ID, version),
		))
		if len(batch) < batchSize {
			continue
		}

		if err := s.upsertWithRetry(ctx, batch); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
		batch = batch[:0]
	}

	if len(batch) > 0 {
		if err := s.upsertWithRetry(ctx, batch); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	// контрольный запрос: коллекция должна отвечать сразу после заливки
	if len(products) > 0 {
		probe, err := space.DocVector(0).Dense(space.Dim())
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}

		neighbors, err := s.repo.SearchSimilar(ctx, probe, 1, products[0].ID)
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
		s.logger.Debugf("vector search probe for %s returned %d neighbors", products[0].ID, len(neighbors))
	}

	s.logger.Infof("vector sync finished: %d products, vocabulary %s", len(products), version)
	return nil
}

func (s *Syncer) upsertWithRetry(ctx context.Context, batch []domain.Embedding) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err = s.repo.Upsert(ctx, batch); err == nil {
			return nil
		}

		backoff := jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitterFactor)
		s.logger.Warnf("vector upsert failed (attempt %d/%d), retrying in %s: %s",
			attempt+1, maxAttempts, backoff, err.Error())

		if err := jitter.Sleep(ctx, backoff); err != nil {
			return err
		}
	}

	return err
}

// pointID детерминированно выводит UUID точки из идентификатора товара,
// чтобы повторная синхронизация перезаписывала существующие точки.
func pointID(productID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(productID)).String()
}
