package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки движка рекомендаций
	ErrEmptyCorpus     = fmt.Errorf("corpus is empty")
	ErrZeroSimilarity  = fmt.Errorf("all similarity scores are zero")
	ErrVectorDimension = fmt.Errorf("vector dimension mismatch")

	// Ошибки каталога и профилей
	ErrUserNotFound    = fmt.Errorf("user not found")
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrEmptyCatalog    = fmt.Errorf("catalog is empty")
	ErrBadCatalogFile  = fmt.Errorf("malformed catalog file")

	// Ошибки сессий
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrNotLoggedIn        = fmt.Errorf("not logged in")
	ErrSessionNotFound    = fmt.Errorf("session not found")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrSeasonRequired       = fmt.Errorf("season is required")
	ErrProductIDRequired    = fmt.Errorf("product_id is required")
	ErrInvalidPagination    = fmt.Errorf("invalid pagination parameters")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrMissingFields        = fmt.Errorf("missing required fields")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
