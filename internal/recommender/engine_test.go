package recommender

import (
	"testing"

	"github.com/DRSN-tech/recommender-backend/internal/domain"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []domain.Product {
	return []domain.Product{
		*domain.NewProduct("P001", "Clothing", "WoolWorks", "warm wool coat hooded", 10000, []string{"winter"}),
		*domain.NewProduct("P002", "Clothing", "WoolWorks", "wool scarf knitted", 5000, []string{"winter"}),
		*domain.NewProduct("P003", "Clothing", "SunWear", "light cotton shirt breathable", 3000, []string{"summer"}),
		*domain.NewProduct("P004", "Footwear", "TrailGo", "leather hiking boots waterproof", 20000, []string{"winter", "monsoon"}),
		*domain.NewProduct("P005", "Electronics", "Voltix", "portable bluetooth speaker", 15000, []string{"summer"}),
		*domain.NewProduct("P006", "Clothing", "SunWear", "cotton summer dress floral", 7000, []string{"summer"}),
	}
}

func testUsers() []domain.UserProfile {
	return []domain.UserProfile{
		*domain.NewUserProfile("U001", []string{"clothing"}, []string{"woolworks"}),
		*domain.NewUserProfile("U002", []string{"electronics"}, []string{"voltix"}),
		// предпочтения без единого терма в словаре каталога
		*domain.NewUserProfile("U003", []string{"telescopes"}, []string{"stargazer"}),
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	engine, err := NewEngine(testCatalog(), testUsers())
	require.NoError(t, err)

	return engine
}

func TestNewEngineEmptyCatalog(t *testing.T) {
	_, err := NewEngine(nil, testUsers())
	require.ErrorIs(t, err, e.ErrEmptyCatalog)
}

func TestRecommendForUserUnknown(t *testing.T) {
	engine := newTestEngine(t)

	_, _, err := engine.RecommendForUser("U999", 4)
	require.ErrorIs(t, err, e.ErrUserNotFound)
}

func TestRecommendForUserPrefersProfileMatches(t *testing.T) {
	engine := newTestEngine(t)

	products, degraded, err := engine.RecommendForUser("U001", 2)
	require.NoError(t, err)
	assert.False(t, degraded)
	require.Len(t, products, 2)

	// товары WoolWorks ранжируются выше остальных
	ids := []string{products[0].ID, products[1].ID}
	assert.ElementsMatch(t, []string{"P001", "P002"}, ids)
}

func TestRecommendForUserHistoryExclusion(t *testing.T) {
	engine := newTestEngine(t)
	catalogSize := len(engine.Products())

	seen := make(map[string]struct{})
	for i := 0; i < catalogSize; i += 2 {
		products, degraded, err := engine.RecommendForUser("U001", 2)
		require.NoError(t, err)
		require.False(t, degraded)

		for _, p := range products {
			_, dup := seen[p.ID]
			require.False(t, dup, "product %s recommended twice", p.ID)
			seen[p.ID] = struct{}{}
		}
	}

	// каталог перечислен без повторов и исчерпан
	assert.Len(t, seen, catalogSize)

	products, _, err := engine.RecommendForUser("U001", 2)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestRecommendForUserZeroSimilarityFallback(t *testing.T) {
	engine := newTestEngine(t)

	products, degraded, err := engine.RecommendForUser("U003", 3)
	require.NoError(t, err)
	assert.True(t, degraded)

	// результат случайный: проверяем только размер и принадлежность каталогу
	require.Len(t, products, 3)
	seen := make(map[string]struct{})
	for _, p := range products {
		_, ok := engine.ProductByID(p.ID)
		assert.True(t, ok)
		_, dup := seen[p.ID]
		assert.False(t, dup)
		seen[p.ID] = struct{}{}
	}

	// деградированная выдача не пополняет историю
	assert.Zero(t, engine.History().SeenCount("U003"))
}

func TestRecommendSimilarExcludesSelfAndReturnsFive(t *testing.T) {
	engine := newTestEngine(t)

	products := engine.RecommendSimilar("P005")

	// динамик ни с чем не пересекается по описанию, но выдача всё равно
	// содержит ровно пять товаров, добитых в порядке каталога
	require.Len(t, products, 5)
	for _, p := range products {
		assert.NotEqual(t, "P005", p.ID)
	}
}

func TestRecommendSimilarRanksOverlapFirst(t *testing.T) {
	engine := newTestEngine(t)

	products := engine.RecommendSimilar("P001")
	require.NotEmpty(t, products)

	// шарф из шерсти того же бренда ближе всего к пальто
	assert.Equal(t, "P002", products[0].ID)
}

func TestRecommendSimilarUnknownProduct(t *testing.T) {
	engine := newTestEngine(t)

	assert.Empty(t, engine.RecommendSimilar("P999"))
}

func TestRecommendForSeasonMissing(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.RecommendForSeason("  ", 0, 8)
	require.ErrorIs(t, err, e.ErrSeasonRequired)
}

func TestRecommendForSeasonSortedBySimilarityThenPrice(t *testing.T) {
	engine := newTestEngine(t)

	scored, err := engine.RecommendForSeason("winter", 0, 8)
	require.NoError(t, err)
	require.Len(t, scored, 3)

	for i := 1; i < len(scored); i++ {
		prev, cur := scored[i-1], scored[i]
		if prev.Score == cur.Score {
			assert.LessOrEqual(t, prev.Product.Price, cur.Product.Price)
		} else {
			assert.Greater(t, prev.Score, cur.Score)
		}
	}

	for _, s := range scored {
		assert.True(t, s.Product.InSeason("winter"))
	}
}

func TestRecommendForSeasonPriceTieBreak(t *testing.T) {
	catalog := []domain.Product{
		*domain.NewProduct("A", "Clothing", "X", "wool coat", 10000, []string{"winter"}),
		*domain.NewProduct("B", "Clothing", "Y", "wool scarf", 5000, []string{"winter"}),
	}

	engine, err := NewEngine(catalog, nil)
	require.NoError(t, err)

	scored, err := engine.RecommendForSeason("winter", 0, 2)
	require.NoError(t, err)
	require.Len(t, scored, 2)

	if scored[0].Score == scored[1].Score {
		assert.Equal(t, "B", scored[0].Product.ID, "cheaper item first on tie")
	} else {
		assert.Greater(t, scored[0].Score, scored[1].Score)
	}
}

func TestRecommendForSeasonFallsBackToFullCatalog(t *testing.T) {
	engine := newTestEngine(t)

	scored, err := engine.RecommendForSeason("springfest", 0, 2)
	require.NoError(t, err)

	// сезон без товаров: каталог целиком, отсортированный и срезанный как обычно
	require.Len(t, scored, 2)
	assert.LessOrEqual(t, scored[0].Product.Price, scored[1].Product.Price)
}

func TestRecommendForSeasonPagination(t *testing.T) {
	engine := newTestEngine(t)

	all, err := engine.RecommendForSeason("summer", 0, 8)
	require.NoError(t, err)
	require.Len(t, all, 3)

	page, err := engine.RecommendForSeason("summer", 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, all[1].Product.ID, page[0].Product.ID)
	assert.Equal(t, all[2].Product.ID, page[1].Product.ID)

	empty, err := engine.RecommendForSeason("summer", 10, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProductsPage(t *testing.T) {
	engine := newTestEngine(t)

	page := engine.ProductsPage(2, 2)
	require.Len(t, page, 2)
	assert.Equal(t, "P003", page[0].ID)
	assert.Equal(t, "P004", page[1].ID)

	assert.Empty(t, engine.ProductsPage(100, 8))
	assert.Len(t, engine.ProductsPage(-5, 3), 3)
}
