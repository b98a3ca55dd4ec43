package usecase

import (
	"context"

	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/DRSN-tech/recommender-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// ImportUseCase переносит каталог и профили из CSV-файлов в PostgreSQL
// одной транзакцией: либо импортируется все, либо ничего.
type ImportUseCase struct {
	catalogSrc  CatalogSource
	profileSrc  ProfileSource
	productRepo ProductWriteRepository
	profileRepo ProfileWriteRepository
	dbPool      transaction.Transactional
	logger      logger.Logger
}

func NewImportUC(
	catalogSrc CatalogSource,
	profileSrc ProfileSource,
	productRepo ProductWriteRepository,
	profileRepo ProfileWriteRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *ImportUseCase {
	return &ImportUseCase{
		catalogSrc:  catalogSrc,
		profileSrc:  profileSrc,
		productRepo: productRepo,
		profileRepo: profileRepo,
		dbPool:      dbPool,
		logger:      logger,
	}
}

// ImportCatalog загружает CSV-источники и выполняет идемпотентный upsert
// каждой записи в рамках одной транзакции.
func (i *ImportUseCase) ImportCatalog(ctx context.Context) (*ImportRes, error) {
	const op = "ImportUseCase.ImportCatalog"

	products, err := i.catalogSrc.LoadProducts(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	profiles, err := i.profileSrc.LoadProfiles(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// При ошибке транзакция откатывается целиком
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	for _, p := range products {
		if err = i.productRepo.Upsert(ctx, &p); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	for _, u := range profiles {
		if err = i.profileRepo.Upsert(ctx, &u); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	i.logger.Infof("catalog import finished: %d products, %d profiles", len(products), len(profiles))

	return NewImportRes(len(products), len(profiles)), nil
}
