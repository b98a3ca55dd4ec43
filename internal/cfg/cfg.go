package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/DRSN-tech/recommender-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

// Источники каталога.
const (
	CatalogSourceCSV      = "csv"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	Http    *HTTPConfig
	Redis   *RedisCfg
	Catalog *CatalogCfg
	Session *SessionCfg
	Db      *PGDBCfg   // nil, если каталог читается из CSV без импорта
	Qdrant  *QdrantCfg // nil, если зеркалирование векторов выключено
	Kafka   *KafkaCfg  // nil, если события аналитики выключены
	Minio   *MinIOCfg  // nil, если изображения товаров выключены
}

type HTTPConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

type RedisCfg struct {
	Addr          string
	Password      string
	User          string
	DB            int
	MaxRetries    int
	DialTimeout   time.Duration
	Timeout       time.Duration
	SessionTTL    time.Duration
	SeasonPageTTL time.Duration
}

type CatalogCfg struct {
	Source        string // csv | postgres
	ProductsPath  string // путь к CSV каталога
	ProfilesPath  string // путь к CSV профилей
	ImportOnStart bool   // импортировать CSV в PostgreSQL при старте
}

type SessionCfg struct {
	SharedSecret string // общий пароль демо-стенда
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type QdrantCfg struct {
	Port                 int
	Host                 string
	ApiKey               string
	QdrantCollectionName string // имя коллекции в Qdrant
	UseTLS               bool
	SyncOnStart          bool
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

type MinIOCfg struct {
	MinioEndpoint     string
	BucketName        string
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
	PresignExpiry     time.Duration
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	catalog, err := loadCatalogCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	session, err := loadSessionCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	db, err := loadPGDBCfg(log, catalog)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	qdrant, err := loadQdrantCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:    http,
		Redis:   redis,
		Catalog: catalog,
		Session: session,
		Db:      db,
		Qdrant:  qdrant,
		Kafka:   kafka,
		Minio:   minio,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
		defaultOrigins      = "*"
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:           port,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		IdleTimeout:    idleTimeout,
		AllowedOrigins: splitEnv("CORS_ALLOWED_ORIGINS", defaultOrigins),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr          = "localhost:6379"
		defaultDB            = 0
		defaultMaxRetries    = 3
		defaultDialTimeout   = 5 * time.Second
		defaultReadTimeout   = 3 * time.Second
		defaultWriteTimeout  = 3 * time.Second
		defaultSessionTTL    = 24 * time.Hour
		defaultSeasonPageTTL = 3 * time.Minute
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	sessionTTL, err := parseDurationEnv("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		log.Errorf(err, "invalid SESSION_TTL")
		return nil, err
	}

	seasonPageTTL, err := parseDurationEnv("SEASON_PAGE_TTL", defaultSeasonPageTTL)
	if err != nil {
		log.Errorf(err, "invalid SEASON_PAGE_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:          addr,
		Password:      password,
		User:          user,
		DB:            db,
		MaxRetries:    maxRetries,
		DialTimeout:   dialTimeout,
		Timeout:       timeout,
		SessionTTL:    sessionTTL,
		SeasonPageTTL: seasonPageTTL,
	}, nil
}

func loadCatalogCfg() (*CatalogCfg, error) {
	const (
		defaultSource       = CatalogSourceCSV
		defaultProductsPath = "data/products_realistic_season_balanced.csv"
		defaultProfilesPath = "data/users_india_dynamic_multifestival.csv"
	)

	source := getEnvOrDefault("CATALOG_SOURCE", defaultSource)
	if source != CatalogSourceCSV && source != CatalogSourcePostgres {
		return nil, fmt.Errorf("CATALOG_SOURCE must be %q or %q: %w",
			CatalogSourceCSV, CatalogSourcePostgres, e.ErrIncorrectEnvVariable)
	}

	importOnStart, err := parseBoolEnv("CATALOG_IMPORT_ON_START", false)
	if err != nil {
		return nil, e.Wrap("CATALOG_IMPORT_ON_START", err)
	}

	return &CatalogCfg{
		Source:        source,
		ProductsPath:  getEnvOrDefault("CATALOG_PRODUCTS_PATH", defaultProductsPath),
		ProfilesPath:  getEnvOrDefault("CATALOG_PROFILES_PATH", defaultProfilesPath),
		ImportOnStart: importOnStart,
	}, nil
}

func loadSessionCfg() (*SessionCfg, error) {
	secret := getEnv("SESSION_SHARED_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SHARED_SECRET environment variable is required")
	}

	return &SessionCfg{SharedSecret: secret}, nil
}

// loadPGDBCfg читает настройки PostgreSQL. База нужна только когда
// каталог читается из нее или включен импорт CSV.
func loadPGDBCfg(log logger.Logger, catalog *CatalogCfg) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	if catalog.Source != CatalogSourcePostgres && !catalog.ImportOnStart {
		return nil, nil
	}

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

// loadQdrantCfg читает настройки Qdrant. Возвращает nil, если
// зеркалирование векторов не включено.
func loadQdrantCfg(log logger.Logger) (*QdrantCfg, error) {
	const (
		defaultQdrantGRPCPort = "6334"
		defaultUseTLS         = false
		defaultCollection     = "product-tfidf"
	)

	syncOnStart, err := parseBoolEnv("QDRANT_SYNC", false)
	if err != nil {
		log.Errorf(err, "invalid QDRANT_SYNC")
		return nil, err
	}
	if !syncOnStart {
		return nil, nil
	}

	host := getEnv("QDRANT_HOST")
	if host == "" {
		return nil, fmt.Errorf("QDRANT_HOST is required when QDRANT_SYNC is enabled")
	}

	port, err := parseIntEnv("QDRANT_GRPC_PORT", mustAtoi(defaultQdrantGRPCPort))
	if err != nil {
		log.Errorf(err, "invalid QDRANT_GRPC_PORT")
		return nil, err
	}

	useTLS, err := parseBoolEnv("QDRANT_USE_TLS", defaultUseTLS)
	if err != nil {
		log.Errorf(err, "invalid QDRANT_USE_TLS")
		return nil, err
	}

	return &QdrantCfg{
		Host:                 host,
		Port:                 port,
		ApiKey:               getEnv("QDRANT__SERVICE__API_KEY"),
		QdrantCollectionName: getEnvOrDefault("COLLECTION_NAME", defaultCollection),
		UseTLS:               useTLS,
		SyncOnStart:          syncOnStart,
	}, nil
}

// loadKafkaCfg читает настройки Kafka. Возвращает nil, если брокеры
// не заданы: события аналитики опциональны.
func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultTopic             = "recommendation-events"
	)

	brokerStr := getEnv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, nil
	}

	// значение из одних разделителей дает пустой список брокеров
	brokers := splitEnv("KAFKA_BROKERS", "")
	if len(brokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS contains no addresses: %w", e.ErrIncorrectEnvVariable)
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

// loadMinIOCfg читает настройки MinIO. Возвращает nil, если endpoint
// не задан: изображения товаров опциональны.
func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL        = false
		defaultPresignExpiry = 15 * time.Minute
	)

	endpoint := getEnv("MINIO_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}

	useSSL, err := parseBoolEnv("MINIO_USE_SSL", defaultUseSSL)
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	presignExpiry, err := parseDurationEnv("MINIO_PRESIGN_EXPIRY", defaultPresignExpiry)
	if err != nil {
		log.Errorf(err, "invalid MINIO_PRESIGN_EXPIRY")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     endpoint,
		BucketName:        getEnvOrDefault("BUCKET_NAME", "product-images"),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		PresignExpiry:     presignExpiry,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// splitEnv разбивает значение переменной окружения по запятым.
func splitEnv(key, defaultValue string) []string {
	raw := getEnvOrDefault(key, defaultValue)
	if raw == "" {
		return nil
	}

	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	return parts
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	boolValue, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return boolValue, nil
}

func mustAtoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
