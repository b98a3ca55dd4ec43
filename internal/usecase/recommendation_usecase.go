package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/recommender-backend/internal/domain"
	"github.com/DRSN-tech/recommender-backend/internal/recommender"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/DRSN-tech/recommender-backend/pkg/logger"
	"github.com/google/uuid"
)

const (
	defaultProfileCount = 4
	defaultSeasonLimit  = 8
	defaultProductPage  = 8
)

// RecommendationUseCase оборачивает движок рекомендаций: разрешает
// идентификаторы в полные записи, подмешивает ссылки на изображения,
// кэширует сезонные страницы и публикует события аналитики.
type RecommendationUseCase struct {
	engine        *recommender.Engine
	imageRepo     ImageRepository     // nil, если MinIO не сконфигурирован
	cacheRepo     CacheRepository     // nil, если Redis-кэш отключен
	producer      EventProducer       // nil, если Kafka отключена
	embeddingRepo EmbeddingRepository // nil, если Qdrant отключен
	logger        logger.Logger
}

func NewRecommendationUC(
	engine *recommender.Engine,
	imageRepo ImageRepository,
	cacheRepo CacheRepository,
	producer EventProducer,
	embeddingRepo EmbeddingRepository,
	logger logger.Logger,
) *RecommendationUseCase {
	return &RecommendationUseCase{
		engine:        engine,
		imageRepo:     imageRepo,
		cacheRepo:     cacheRepo,
		producer:      producer,
		embeddingRepo: embeddingRepo,
		logger:        logger,
	}
}

// GetProfileRecommendations возвращает до Count товаров по предпочтениям
// пользователя, исключая уже показанные ему в этом запуске.
func (u *RecommendationUseCase) GetProfileRecommendations(ctx context.Context, req *ProfileRecommendationsReq) (*ProfileRecommendationsRes, error) {
	const op = "RecommendationUseCase.GetProfileRecommendations"

	count := req.Count
	if count <= 0 {
		count = defaultProfileCount
	}

	products, degraded, err := u.engine.RecommendForUser(req.UserID, count)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := u.toProductInfos(ctx, products)

	source := domain.SourceProfile
	if degraded {
		source = domain.SourceFallback
	}
	u.publishEvent(req.UserID, source, products)

	return &ProfileRecommendationsRes{Products: result, Degraded: degraded}, nil
}

// GetItemRecommendations возвращает пять товаров, наиболее похожих на
// заданный. Для неизвестного товара — пустой список, не ошибка.
func (u *RecommendationUseCase) GetItemRecommendations(ctx context.Context, productID string) ([]ProductInfo, error) {
	if productID == "" {
		return nil, e.ErrProductIDRequired
	}

	products := u.similarProducts(ctx, productID)
	u.publishEvent("", domain.SourceItem, products)

	return u.toProductInfos(ctx, products), nil
}

// similarProducts ищет соседей в Qdrant, когда он сконфигурирован, и
// откатывается на встроенное ранжирование при любой ошибке поиска.
// Оба пути работают в одном векторном пространстве и дают одинаковую
// выдачу на исправном хранилище.
func (u *RecommendationUseCase) similarProducts(ctx context.Context, productID string) []domain.Product {
	if u.embeddingRepo == nil {
		return u.engine.RecommendSimilar(productID)
	}

	vector, err := u.engine.CombinedVector(productID)
	if err != nil {
		// неизвестный товар: встроенный путь вернет пустой список
		return u.engine.RecommendSimilar(productID)
	}

	ids, err := u.embeddingRepo.SearchSimilar(ctx, vector, recommender.SimilarItemsCount, productID)
	if err != nil {
		u.logger.Warnf("vector search failed, falling back to in-process ranking: %v", err)
		return u.engine.RecommendSimilar(productID)
	}

	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		product, ok := u.engine.ProductByID(id)
		if !ok {
			u.logger.Warnf("vector search returned unknown product %s, skipping", id)
			continue
		}
		products = append(products, product)
	}

	return products
}

// GetSeasonalRecommendations возвращает страницу товаров сезона,
// отсортированных по (близость убыв., цена возр.), с очками близости.
func (u *RecommendationUseCase) GetSeasonalRecommendations(ctx context.Context, req *SeasonRecommendationsReq) ([]ScoredProductInfo, error) {
	const op = "RecommendationUseCase.GetSeasonalRecommendations"

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSeasonLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	if u.cacheRepo != nil {
		page, hit, err := u.cacheRepo.GetSeasonPage(ctx, req.Season, offset, limit)
		if err != nil {
			u.logger.Warnf("season cache lookup failed: %v", e.Wrap(op, err))
		} else if hit {
			return page, nil
		}
	}

	scored, err := u.engine.RecommendForSeason(req.Season, offset, limit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := make([]ScoredProductInfo, 0, len(scored))
	products := make([]domain.Product, 0, len(scored))
	for _, s := range scored {
		info := NewScoredProductInfo(s.Product, s.Score)
		info.ImageURL = u.imageURL(ctx, s.Product.ID)
		result = append(result, info)
		products = append(products, s.Product)
	}

	if u.cacheRepo != nil {
		// Фоновое добавление страницы в кэш
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := u.cacheRepo.SetSeasonPage(bgCtx, req.Season, offset, limit, result); err != nil {
				u.logger.Warnf("failed to cache season page in background: %v", e.Wrap(op, err))
			}
		}()
	}

	u.publishEvent("", domain.SourceSeason, products)

	return result, nil
}

// ListProducts возвращает позиционную страницу каталога.
func (u *RecommendationUseCase) ListProducts(ctx context.Context, offset, limit int) ([]ProductInfo, error) {
	if limit <= 0 {
		limit = defaultProductPage
	}

	return u.toProductInfos(ctx, u.engine.ProductsPage(offset, limit)), nil
}

func (u *RecommendationUseCase) toProductInfos(ctx context.Context, products []domain.Product) []ProductInfo {
	result := make([]ProductInfo, 0, len(products))
	for _, p := range products {
		info := NewProductInfo(p)
		info.ImageURL = u.imageURL(ctx, p.ID)
		result = append(result, info)
	}

	return result
}

func (u *RecommendationUseCase) imageURL(ctx context.Context, productID string) string {
	if u.imageRepo == nil {
		return ""
	}

	url, err := u.imageRepo.PresignedURL(ctx, productID)
	if err != nil {
		u.logger.Warnf("failed to presign image url for %s: %v", productID, err)
		return ""
	}

	return url
}

// publishEvent отправляет событие аналитики, не блокируя запрос.
func (u *RecommendationUseCase) publishEvent(userID, source string, products []domain.Product) {
	if u.producer == nil || len(products) == 0 {
		return
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	event := domain.NewRecommendationEvent(uuid.NewString(), userID, source, ids)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := u.producer.PublishRecommendation(ctx, event); err != nil {
			u.logger.Warnf("failed to publish recommendation event: %v", err)
		}
	}()
}
