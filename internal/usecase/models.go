package usecase

import "github.com/DRSN-tech/recommender-backend/internal/domain"

// RECOMMENDATION USECASE

// ProfileRecommendationsReq — запрос профильных рекомендаций.
// Offset принимается для совместимости интерфейса, но не влияет на
// выдачу: постраничность этого пути обеспечивается исключением уже
// показанных товаров, а не позиционным срезом.
type ProfileRecommendationsReq struct {
	UserID string
	Count  int
	Offset int
}

// ProfileRecommendationsRes — результат профильных рекомендаций.
// Degraded=true помечает случайную выборку при нулевой схожести.
type ProfileRecommendationsRes struct {
	Products []ProductInfo
	Degraded bool
}

// SeasonRecommendationsReq — запрос сезонных рекомендаций.
type SeasonRecommendationsReq struct {
	Season string
	Offset int
	Limit  int
}

// ProductInfo — DTO с информацией о товаре для внешнего использования.
type ProductInfo struct {
	ID       string   `json:"ProductID"`
	Category string   `json:"Category"`
	Brand    string   `json:"Brand"`
	Features string   `json:"ProductFeatures"`
	Price    int64    `json:"Price (INR)"`
	Seasons  []string `json:"Seasons,omitempty"`
	ImageURL string   `json:"ImageURL,omitempty"`
}

// ScoredProductInfo — товар с вычисленной близостью к сезонному запросу.
type ScoredProductInfo struct {
	ProductInfo
	Score float64 `json:"TextSimilarity"`
}

// IMPORT USECASE

// ImportRes — итог импорта каталога в PostgreSQL.
type ImportRes struct {
	Products int
	Profiles int
}

// AUTH USECASE

type LoginReq struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// MAPPERS

func NewProfileRecommendationsReq(userID string, count, offset int) *ProfileRecommendationsReq {
	return &ProfileRecommendationsReq{
		UserID: userID,
		Count:  count,
		Offset: offset,
	}
}

func NewSeasonRecommendationsReq(season string, offset, limit int) *SeasonRecommendationsReq {
	return &SeasonRecommendationsReq{
		Season: season,
		Offset: offset,
		Limit:  limit,
	}
}

func NewProductInfo(p domain.Product) ProductInfo {
	return ProductInfo{
		ID:       p.ID,
		Category: p.Category,
		Brand:    p.Brand,
		Features: p.Features,
		Price:    p.Price / 100, // внутри пайсы, наружу целые рупии
		Seasons:  p.Seasons,
	}
}

func NewScoredProductInfo(p domain.Product, score float64) ScoredProductInfo {
	return ScoredProductInfo{
		ProductInfo: NewProductInfo(p),
		Score:       score,
	}
}

func NewImportRes(products, profiles int) *ImportRes {
	return &ImportRes{
		Products: products,
		Profiles: profiles,
	}
}
