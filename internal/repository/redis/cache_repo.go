package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/recommender-backend/internal/cfg"
	"github.com/DRSN-tech/recommender-backend/internal/usecase"
	"github.com/DRSN-tech/recommender-backend/pkg/clients"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/DRSN-tech/recommender-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// CacheRepo кэширует готовые страницы сезонных рекомендаций.
// Сезонная выдача детерминирована для фиксированного каталога,
// поэтому страница безопасно переживает свой TTL.
type CacheRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// GetSeasonPage возвращает закэшированную страницу и признак попадания.
func (c *CacheRepo) GetSeasonPage(ctx context.Context, season string, offset, limit int) ([]usecase.ScoredProductInfo, bool, error) {
	data, err := c.client.Client.Get(ctx, c.seasonKey(season, offset, limit)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, false, nil // cache miss
		}
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	var page []usecase.ScoredProductInfo
	if err := json.Unmarshal(data, &page); err != nil {
		c.logger.Warnf("season cache unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, false, nil // трактуем как промах
	}

	return page, true, nil
}

// SetSeasonPage кэширует страницу с заданным TTL.
// Ошибки записи логируются и не прерывают запрос.
func (c *CacheRepo) SetSeasonPage(ctx context.Context, season string, offset, limit int, page []usecase.ScoredProductInfo) error {
	data, err := json.Marshal(page)
	if err != nil {
		c.logger.Warnf("season cache marshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil
	}

	if err := c.client.Client.Set(ctx, c.seasonKey(season, offset, limit), data, c.cfg.SeasonPageTTL).Err(); err != nil {
		c.logger.Warnf("season cache set failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// seasonKey возвращает Redis-ключ страницы сезонной выдачи.
func (c *CacheRepo) seasonKey(season string, offset, limit int) string {
	return fmt.Sprintf("season:%s:%d:%d", season, offset, limit)
}
