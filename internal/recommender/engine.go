package recommender

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/recommender-backend/internal/domain"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
)

// SimilarItemsCount — размер выдачи товарных рекомендаций.
const SimilarItemsCount = 5

// ScoredProduct — товар с вычисленной близостью к запросу.
type ScoredProduct struct {
	Product domain.Product
	Score   float64
}

// Engine — движок рекомендаций. Держит неизменяемый каталог и два
// векторных пространства: объединенное (категория + бренд + описание)
// для профильных и товарных рекомендаций и пространство только по
// описаниям для сезонных. Оба строятся один раз при старте и далее
// безопасны для конкурентного чтения.
type Engine struct {
	products []domain.Product
	byID     map[string]int
	users    map[string]domain.UserProfile

	combined *VectorSpace
	features *VectorSpace

	history *HistoryTracker

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewEngine строит движок по каталогу и профилям пользователей.
// Возвращает e.ErrEmptyCatalog для пустого каталога и e.ErrEmptyCorpus,
// если по текстам товаров не удается построить словарь.
func NewEngine(products []domain.Product, users []domain.UserProfile) (*Engine, error) {
	if len(products) == 0 {
		return nil, e.ErrEmptyCatalog
	}

	combinedCorpus := make([]string, len(products))
	featureCorpus := make([]string, len(products))
	byID := make(map[string]int, len(products))
	for i, p := range products {
		combinedCorpus[i] = Normalize(p.Category) + " " + Normalize(p.Brand) + " " + Normalize(p.Features)
		featureCorpus[i] = p.Features
		byID[p.ID] = i
	}

	combined, err := Fit(combinedCorpus)
	if err != nil {
		return nil, err
	}

	features, err := Fit(featureCorpus)
	if err != nil {
		return nil, err
	}

	userMap := make(map[string]domain.UserProfile, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	return &Engine{
		products: products,
		byID:     byID,
		users:    userMap,
		combined: combined,
		features: features,
		history:  NewHistoryTracker(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// RecommendForUser возвращает до n товаров по предпочтениям пользователя,
// исключая уже показанные ему в этом запуске. Повторные вызовы постранично
// выдают все более низко ранжированные, еще не виденные товары.
// Если профиль не пересекается со словарем каталога ни одним термом,
// возвращается случайная выборка из каталога с признаком degraded=true
// (история при этом не пополняется).
func (en *Engine) RecommendForUser(userID string, n int) ([]domain.Product, bool, error) {
	profile, ok := en.users[strings.TrimSpace(userID)]
	if !ok {
		return nil, false, e.ErrUserNotFound
	}

	if n <= 0 {
		return nil, false, nil
	}

	terms := make([]string, 0, len(profile.PreferredCategories)+len(profile.FavoriteBrands))
	terms = append(terms, profile.PreferredCategories...)
	terms = append(terms, profile.FavoriteBrands...)

	query := en.combined.Project(strings.Join(terms, " "))

	matches, err := Rank(query, en.combined.Docs())
	if err != nil {
		if errors.Is(err, e.ErrZeroSimilarity) {
			return en.randomSample(n), true, nil
		}
		return nil, false, err
	}

	rankedIDs := make([]string, len(matches))
	for i, m := range matches {
		rankedIDs[i] = en.products[m.Index].ID
	}

	emitted := en.history.FilterAndMark(profile.ID, rankedIDs, n)

	result := make([]domain.Product, 0, len(emitted))
	for _, id := range emitted {
		result = append(result, en.products[en.byID[id]])
	}

	return result, false, nil
}

// RecommendSimilar возвращает пять товаров, наиболее близких к заданному
// по объединенному тексту. Сам товар исключается из выдачи; нулевые
// совпадения добиваются в порядке каталога. Для неизвестного ID
// возвращается пустой список.
func (en *Engine) RecommendSimilar(productID string) []domain.Product {
	idx, ok := en.byID[strings.TrimSpace(productID)]
	if !ok {
		return []domain.Product{}
	}

	// близость товара с самим собой равна 1, нулевых выдач не бывает
	matches, _ := Rank(en.combined.DocVector(idx), en.combined.Docs())

	result := make([]domain.Product, 0, SimilarItemsCount)
	for _, m := range matches {
		if m.Index == idx {
			continue
		}
		result = append(result, en.products[m.Index])
		if len(result) >= SimilarItemsCount {
			break
		}
	}

	return result
}

// RecommendForSeason фильтрует каталог по сезону (при пустом совпадении —
// весь каталог), ранжирует по близости описаний к метке сезона, сортирует
// по (близость убыв., цена возр.) и возвращает срез offset/limit.
func (en *Engine) RecommendForSeason(season string, offset, limit int) ([]ScoredProduct, error) {
	season = Normalize(season)
	if season == "" {
		return nil, e.ErrSeasonRequired
	}

	indices := make([]int, 0, len(en.products))
	for i, p := range en.products {
		if p.InSeason(season) {
			indices = append(indices, i)
		}
	}

	// сезон без товаров: откат на весь каталог
	if len(indices) == 0 {
		indices = indices[:0]
		for i := range en.products {
			indices = append(indices, i)
		}
	}

	query := en.features.Project(season)

	scored := make([]ScoredProduct, len(indices))
	for i, idx := range indices {
		scored[i] = ScoredProduct{
			Product: en.products[idx],
			Score:   query.Dot(en.features.DocVector(idx)),
		}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		if scored[a].Score != scored[b].Score {
			return scored[a].Score > scored[b].Score
		}
		return scored[a].Product.Price < scored[b].Product.Price
	})

	return paginate(scored, offset, limit), nil
}

// ProductsPage возвращает позиционную страницу каталога.
func (en *Engine) ProductsPage(offset, limit int) []domain.Product {
	return paginate(en.products, offset, limit)
}

// ProductByID возвращает товар каталога по идентификатору.
func (en *Engine) ProductByID(id string) (domain.Product, bool) {
	idx, ok := en.byID[strings.TrimSpace(id)]
	if !ok {
		return domain.Product{}, false
	}

	return en.products[idx], true
}

// History возвращает трекер показанных рекомендаций.
func (en *Engine) History() *HistoryTracker {
	return en.history
}

// CombinedSpace возвращает объединенное векторное пространство.
func (en *Engine) CombinedSpace() *VectorSpace {
	return en.combined
}

// CombinedVector возвращает плотный вектор товара в объединенном
// пространстве для запросов к внешнему векторному хранилищу.
func (en *Engine) CombinedVector(productID string) ([]float32, error) {
	idx, ok := en.byID[strings.TrimSpace(productID)]
	if !ok {
		return nil, e.ErrProductNotFound
	}

	return en.combined.DocVector(idx).Dense(en.combined.Dim())
}

// Products возвращает каталог в исходном порядке.
func (en *Engine) Products() []domain.Product {
	return en.products
}

// HasUser сообщает, известен ли пользователь с данным идентификатором.
func (en *Engine) HasUser(userID string) bool {
	_, ok := en.users[strings.TrimSpace(userID)]
	return ok
}

func (en *Engine) randomSample(n int) []domain.Product {
	if n > len(en.products) {
		n = len(en.products)
	}

	en.rngMu.Lock()
	perm := en.rng.Perm(len(en.products))
	en.rngMu.Unlock()

	result := make([]domain.Product, 0, n)
	for _, idx := range perm[:n] {
		result = append(result, en.products[idx])
	}

	return result
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) || limit <= 0 {
		return []T{}
	}

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end]
}
