package minio

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/recommender-backend/internal/cfg"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ImageRepo выдает presigned-ссылки на изображения товаров в MinIO.
// Объекты лежат по соглашению products/<product_id>.jpg; существование
// объекта не проверяется — фронтенд подставляет заглушку по 404.
type ImageRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageRepo {
	return &ImageRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// PresignedURL возвращает временную ссылку на изображение товара.
func (i *ImageRepo) PresignedURL(ctx context.Context, productID string) (string, error) {
	objKey := fmt.Sprintf("products/%s.jpg", productID)

	url, err := i.mc.PresignedGetObject(ctx, i.cfg.BucketName, objKey, i.cfg.PresignExpiry, nil)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return url.String(), nil
}
