package usecase

import (
	"context"

	"github.com/DRSN-tech/recommender-backend/internal/domain"
)

// CatalogSource отдает каталог целиком для построения движка.
type CatalogSource interface {
	LoadProducts(ctx context.Context) ([]domain.Product, error)
}

// ProfileSource отдает профили пользователей целиком.
type ProfileSource interface {
	LoadProfiles(ctx context.Context) ([]domain.UserProfile, error)
}

// ProductWriteRepository — запись каталога при импорте в PostgreSQL.
type ProductWriteRepository interface {
	Upsert(ctx context.Context, product *domain.Product) error
}

// ProfileWriteRepository — запись профилей при импорте в PostgreSQL.
type ProfileWriteRepository interface {
	Upsert(ctx context.Context, profile *domain.UserProfile) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// CacheRepository кэширует готовые страницы сезонных рекомендаций.
type CacheRepository interface {
	GetSeasonPage(ctx context.Context, season string, offset, limit int) ([]ScoredProductInfo, bool, error)
	SetSeasonPage(ctx context.Context, season string, offset, limit int, page []ScoredProductInfo) error
}

type EmbeddingRepository interface {
	Upsert(ctx context.Context, vectors []domain.Embedding) error
	SearchSimilar(ctx context.Context, vector []float32, limit uint64, excludeProductID string) ([]string, error)
}

// ImageRepository выдает ссылки на изображения товаров в S3.
type ImageRepository interface {
	PresignedURL(ctx context.Context, productID string) (string, error)
}
