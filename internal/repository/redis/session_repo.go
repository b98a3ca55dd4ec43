package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/recommender-backend/internal/cfg"
	"github.com/DRSN-tech/recommender-backend/internal/domain"
	"github.com/DRSN-tech/recommender-backend/pkg/clients"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// SessionRepo хранит сессии пользователей в Redis с TTL.
type SessionRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
}

func NewSessionRepo(client *clients.RedisClient, cfg *cfg.RedisCfg) *SessionRepo {
	return &SessionRepo{
		client: client,
		cfg:    cfg,
	}
}

// Create сохраняет сессию под ее токеном.
func (s *SessionRepo) Create(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, s.sessionKey(session.Token), data, s.cfg.SessionTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Get возвращает сессию по токену или e.ErrSessionNotFound.
func (s *SessionRepo) Get(ctx context.Context, token string) (*domain.Session, error) {
	data, err := s.client.Client.Get(ctx, s.sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, e.ErrSessionNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &session, nil
}

// Delete удаляет сессию по токену.
func (s *SessionRepo) Delete(ctx context.Context, token string) error {
	if err := s.client.Client.Del(ctx, s.sessionKey(token)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// sessionKey возвращает Redis-ключ для токена сессии.
func (s *SessionRepo) sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}
