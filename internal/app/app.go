package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/recommender-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/recommender-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/recommender-backend/internal/domain"
	"github.com/DRSN-tech/recommender-backend/internal/infrastructure/auth"
	"github.com/DRSN-tech/recommender-backend/internal/infrastructure/kafka"
	"github.com/DRSN-tech/recommender-backend/internal/infrastructure/vectorsync"
	"github.com/DRSN-tech/recommender-backend/internal/recommender"
	"github.com/DRSN-tech/recommender-backend/internal/repository/csvstore"
	s3Repo "github.com/DRSN-tech/recommender-backend/internal/repository/minio"
	"github.com/DRSN-tech/recommender-backend/internal/repository/pgdb"
	qdrantRepo "github.com/DRSN-tech/recommender-backend/internal/repository/qdrant"
	"github.com/DRSN-tech/recommender-backend/internal/repository/redis"
	"github.com/DRSN-tech/recommender-backend/internal/usecase"
	"github.com/DRSN-tech/recommender-backend/pkg/clients"
	"github.com/DRSN-tech/recommender-backend/pkg/closer"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/DRSN-tech/recommender-backend/pkg/logger"
	"github.com/DRSN-tech/recommender-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout     = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App собирает все зависимости сервиса и управляет их жизненным циклом.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	closer  *closer.Closer
	httpSrv *v1Http.Server
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(0)

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if db != nil {
		cl.Add(func(ctx context.Context) error {
			db.Close()
			return nil
		})
	}

	if cfg.Catalog.ImportOnStart {
		if err := runImport(log, cfg, db); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	products, profiles, err := loadCatalog(cfg, db)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	engine, err := recommender.NewEngine(products, profiles)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	log.Infof("recommendation engine built: %d products, %d profiles, vocabulary %d",
		len(products), len(profiles), engine.CombinedSpace().Dim())

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.AddCloser(redisClient.Client)

	sessionRepo := redis.NewSessionRepo(redisClient, cfg.Redis)
	cacheRepo := redis.NewCacheRepo(redisClient, cfg.Redis, log)

	imageRepo, err := initMinIO(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	embRepo, err := initQdrant(log, cfg, engine, cl)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	producer, err := initKafka(log, cfg, cl)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	recUC := usecase.NewRecommendationUC(engine, imageRepo, cacheRepo, producer, embRepo, log)
	authUC := usecase.NewAuthUC(engine, sessionRepo, auth.NewSharedSecretVerifier(cfg.Session), log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(cfg.Http, recUC, authUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	cl.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	return &App{
		cfg:     cfg,
		logger:  log,
		closer:  cl,
		httpSrv: httpSrv,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до сигнала остановки
// или фатальной ошибки сервера.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		if appErr == nil {
			appErr = err
		}
	} else {
		a.logger.Infof("Application shutdown complete")
	}

	return appErr
}

// initPGDB подключается к PostgreSQL и применяет миграции.
// Возвращает nil без ошибки, когда база не сконфигурирована.
func initPGDB(log logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	if cfg.Db == nil {
		return nil, nil
	}

	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		log.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(log); err != nil {
		log.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		log.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

func runImport(log logger.Logger, cfg *config.Config, db *postgres.PgDatabase) error {
	importUC := usecase.NewImportUC(
		csvstore.NewCatalogRepo(cfg.Catalog.ProductsPath),
		csvstore.NewProfileRepo(cfg.Catalog.ProfilesPath),
		pgdb.NewProductRepo(db.Pool),
		pgdb.NewProfileRepo(db.Pool),
		db.Pool,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	if _, err := importUC.ImportCatalog(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// loadCatalog читает товары и профили из настроенного источника.
func loadCatalog(cfg *config.Config, db *postgres.PgDatabase) ([]domain.Product, []domain.UserProfile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	var (
		catalogSrc usecase.CatalogSource
		profileSrc usecase.ProfileSource
	)
	if cfg.Catalog.Source == config.CatalogSourcePostgres {
		catalogSrc = pgdb.NewProductRepo(db.Pool)
		profileSrc = pgdb.NewProfileRepo(db.Pool)
	} else {
		catalogSrc = csvstore.NewCatalogRepo(cfg.Catalog.ProductsPath)
		profileSrc = csvstore.NewProfileRepo(cfg.Catalog.ProfilesPath)
	}

	products, err := catalogSrc.LoadProducts(ctx)
	if err != nil {
		return nil, nil, e.Wrap(whereami.WhereAmI(), err)
	}

	profiles, err := profileSrc.LoadProfiles(ctx)
	if err != nil {
		return nil, nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return products, profiles, nil
}

func initMinIO(log logger.Logger, cfg *config.Config) (usecase.ImageRepository, error) {
	if cfg.Minio == nil {
		return nil, nil
	}

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		log.Errorf(err, "failed to initialize minio client")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()
	if err := clients.EnsureBucket(ctx, minioClient, cfg.Minio.BucketName); err != nil {
		log.Errorf(err, "failed to initialize MinIO bucket")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s3Repo.NewImageRepo(minioClient, cfg.Minio), nil
}

// initQdrant зеркалирует векторы каталога в Qdrant и возвращает
// репозиторий для товарных рекомендаций. Nil, когда Qdrant выключен.
func initQdrant(log logger.Logger, cfg *config.Config, engine *recommender.Engine, cl *closer.Closer) (usecase.EmbeddingRepository, error) {
	if cfg.Qdrant == nil {
		return nil, nil
	}

	qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
	if err != nil {
		log.Errorf(err, "failed to initialize qdrant")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.AddCloser(qdrantClient.Client)

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()
	if err := clients.EnsureCollection(ctx, qdrantClient, uint64(engine.CombinedSpace().Dim())); err != nil {
		log.Errorf(err, "failed to initialize qdrant collection")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	embRepo := qdrantRepo.NewEmbeddingRepo(qdrantClient.Client, cfg.Qdrant)
	syncer := vectorsync.NewSyncer(engine, embRepo, log)

	syncCtx, syncCancel := context.WithTimeout(context.Background(), time.Minute)
	defer syncCancel()
	if err := syncer.Sync(syncCtx); err != nil {
		log.Errorf(err, "failed to sync vectors to qdrant")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return embRepo, nil
}

func initKafka(log logger.Logger, cfg *config.Config, cl *closer.Closer) (usecase.EventProducer, error) {
	if cfg.Kafka == nil {
		return nil, nil
	}

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := producer.EnsureTopic(initTimeout); err != nil {
		log.Errorf(err, "failed to ensure kafka topic")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cl.AddCloser(producer)

	return producer, nil
}
