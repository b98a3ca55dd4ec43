package qdrant

import (
	"context"

	"github.com/DRSN-tech/recommender-backend/internal/cfg"
	"github.com/DRSN-tech/recommender-backend/internal/domain"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

// EmbeddingRepo хранит TF-IDF векторы товаров в Qdrant.
// Используется как альтернативный бэкенд товарных рекомендаций.
type EmbeddingRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
}

func NewEmbeddingRepo(client *qdrant.Client, cfg *cfg.QdrantCfg) *EmbeddingRepo {
	return &EmbeddingRepo{
		client: client,
		cfg:    cfg,
	}
}

// Upsert сохраняет или обновляет векторы товаров в коллекции Qdrant.
func (q *EmbeddingRepo) Upsert(ctx context.Context, vectors []domain.Embedding) error {
	reqVectors := make([]*qdrant.PointStruct, 0, len(vectors))
	for _, vector := range vectors {
		reqVectors = append(reqVectors, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(vector.ID),
			Vectors: qdrant.NewVectors(vector.Vector...),
			Payload: qdrant.NewValueMap(vector.Payload),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Points:         reqVectors,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// SearchSimilar возвращает идентификаторы товаров, ближайших к вектору
// запроса, исключая сам товар запроса.
func (q *EmbeddingRepo) SearchSimilar(ctx context.Context, vector []float32, limit uint64, excludeProductID string) ([]string, error) {
	// запрашиваем на один больше: сам товар входит в выдачу с близостью 1
	queryLimit := limit + 1

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.cfg.QdrantCollectionName,
		Query:          qdrant.NewQueryDense(vector),
		Limit:          &queryLimit,
		WithPayload:    qdrant.NewWithPayloadInclude("product_id"),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	ids := make([]string, 0, limit)
	for _, point := range points {
		productID := point.Payload["product_id"].GetStringValue()
		if productID == "" || productID == excludeProductID {
			continue
		}

		ids = append(ids, productID)
		if uint64(len(ids)) >= limit {
			break
		}
	}

	return ids, nil
}
