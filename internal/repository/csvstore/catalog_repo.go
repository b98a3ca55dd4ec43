package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/DRSN-tech/recommender-backend/internal/domain"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

// Колонки CSV-файла каталога.
const (
	colProductID = "ProductID"
	colCategory  = "Category"
	colBrand     = "Brand"
	colFeatures  = "ProductFeatures"
	colPrice     = "Price (INR)"
	colSeasons   = "Seasons"
)

// CatalogRepo загружает каталог товаров из CSV-файла.
type CatalogRepo struct {
	path string
}

func NewCatalogRepo(path string) *CatalogRepo {
	return &CatalogRepo{path: path}
}

// LoadProducts читает файл целиком и возвращает товары в порядке строк.
// Нормализация полей уровня записи (обрезка идентификаторов, цена в
// пайсах, сезоны в нижнем регистре) выполняется здесь, до передачи
// каталога движку.
func (r *CatalogRepo) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	rows, header, err := readCSV(r.path)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	idx, err := columnIndex(header, colProductID, colCategory, colBrand, colFeatures, colPrice, colSeasons)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	products := make([]domain.Product, 0, len(rows))
	for i, row := range rows {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		price, err := parsePriceToPaise(row[idx[colPrice]])
		if err != nil {
			return nil, e.Wrap(fmt.Sprintf("row %d", i+2), err)
		}

		products = append(products, *domain.NewProduct(
			strings.TrimSpace(row[idx[colProductID]]),
			strings.TrimSpace(row[idx[colCategory]]),
			strings.TrimSpace(row[idx[colBrand]]),
			strings.TrimSpace(row[idx[colFeatures]]),
			price,
			parseSeasons(row[idx[colSeasons]]),
		))
	}

	if len(products) == 0 {
		return nil, e.ErrEmptyCatalog
	}

	return products, nil
}

// parseSeasons разбивает список сезонов по запятым и нормализует метки.
func parseSeasons(raw string) []string {
	parts := strings.Split(raw, ",")
	seasons := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.ToLower(strings.TrimSpace(p)); s != "" {
			seasons = append(seasons, s)
		}
	}

	return seasons
}

// parsePriceToPaise переводит строку вида "599.99" в пайсы (int64).
func parsePriceToPaise(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidPrice
	}

	if d.Exponent() < -2 {
		return 0, e.ErrPricePrecision
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// readCSV возвращает строки файла и его заголовок.
func readCSV(path string) ([][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, e.Wrap(path, e.ErrBadCatalogFile)
	}

	if len(records) < 1 {
		return nil, nil, e.ErrBadCatalogFile
	}

	return records[1:], records[0], nil
}

// columnIndex сопоставляет имена обязательных колонок их позициям.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q: %w", name, e.ErrBadCatalogFile)
		}
	}

	return idx, nil
}
