package pgdb

import (
	"context"

	"github.com/DRSN-tech/recommender-backend/internal/domain"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/DRSN-tech/recommender-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий каталога поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Upsert идемпотентно создаёт или обновляет товар по идентификатору.
// Запись обновляется только при фактическом изменении полей.
func (p *ProductRepo) Upsert(ctx context.Context, product *domain.Product) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products (id, category, brand, features, price, seasons)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET
			category = EXCLUDED.category,
			brand = EXCLUDED.brand,
			features = EXCLUDED.features,
			price = EXCLUDED.price,
			seasons = EXCLUDED.seasons,
			updated_at = NOW()
		WHERE
			products.category IS DISTINCT FROM EXCLUDED.category OR
			products.brand IS DISTINCT FROM EXCLUDED.brand OR
			products.features IS DISTINCT FROM EXCLUDED.features OR
			products.price IS DISTINCT FROM EXCLUDED.price OR
			products.seasons IS DISTINCT FROM EXCLUDED.seasons;
	`

	if _, err := tx.Exec(ctx, query,
		product.ID, product.Category, product.Brand, product.Features, product.Price, product.Seasons,
	); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// LoadProducts возвращает каталог целиком в стабильном порядке вставки.
func (p *ProductRepo) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, category, brand, features, price, seasons
		FROM products
		ORDER BY inserted_at, id
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID, &product.Category, &product.Brand,
			&product.Features, &product.Price, &product.Seasons,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, product)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
