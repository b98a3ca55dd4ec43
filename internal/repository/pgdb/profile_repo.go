package pgdb

import (
	"context"

	"github.com/DRSN-tech/recommender-backend/internal/domain"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/DRSN-tech/recommender-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProfileRepo реализует репозиторий профилей поверх PostgreSQL.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// Upsert идемпотентно создаёт или обновляет профиль пользователя.
func (p *ProfileRepo) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO user_profiles (id, preferred_categories, favorite_brands)
		VALUES ($1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET
			preferred_categories = EXCLUDED.preferred_categories,
			favorite_brands = EXCLUDED.favorite_brands,
			updated_at = NOW()
		WHERE
			user_profiles.preferred_categories IS DISTINCT FROM EXCLUDED.preferred_categories OR
			user_profiles.favorite_brands IS DISTINCT FROM EXCLUDED.favorite_brands;
	`

	if _, err := tx.Exec(ctx, query,
		profile.ID, profile.PreferredCategories, profile.FavoriteBrands,
	); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// LoadProfiles возвращает все профили пользователей.
func (p *ProfileRepo) LoadProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	query := `
		SELECT id, preferred_categories, favorite_brands
		FROM user_profiles
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.UserProfile, 0)
	for rows.Next() {
		var profile domain.UserProfile
		if err := rows.Scan(&profile.ID, &profile.PreferredCategories, &profile.FavoriteBrands); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
