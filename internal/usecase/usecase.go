package usecase

import (
	"context"

	"github.com/DRSN-tech/recommender-backend/internal/domain"
)

type RecommendationUC interface {
	GetProfileRecommendations(ctx context.Context, req *ProfileRecommendationsReq) (*ProfileRecommendationsRes, error)
	GetItemRecommendations(ctx context.Context, productID string) ([]ProductInfo, error)
	GetSeasonalRecommendations(ctx context.Context, req *SeasonRecommendationsReq) ([]ScoredProductInfo, error)
	ListProducts(ctx context.Context, offset, limit int) ([]ProductInfo, error)
}

type AuthUC interface {
	Login(ctx context.Context, req *LoginReq) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
	Check(ctx context.Context, token string) (*domain.Session, error)
}

type ImportUC interface {
	ImportCatalog(ctx context.Context) (*ImportRes, error)
}
