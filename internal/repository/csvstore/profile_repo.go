package csvstore

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/DRSN-tech/recommender-backend/internal/domain"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/jimlawless/whereami"
)

// Колонки CSV-файла профилей.
const (
	colCustomerID = "CustomerID"
	colCategories = "Preferred Categories"
	colBrands     = "Favorite Brands"
)

// ProfileRepo загружает профили пользователей из CSV-файла.
type ProfileRepo struct {
	path string
}

func NewProfileRepo(path string) *ProfileRepo {
	return &ProfileRepo{path: path}
}

// LoadProfiles читает файл целиком. Списки предпочтений записаны либо
// JSON-массивом, либо строкой через запятую; значения нормализуются
// в нижний регистр.
func (r *ProfileRepo) LoadProfiles(ctx context.Context) ([]domain.UserProfile, error) {
	rows, header, err := readCSV(r.path)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	idx, err := columnIndex(header, colCustomerID, colCategories, colBrands)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	profiles := make([]domain.UserProfile, 0, len(rows))
	for _, row := range rows {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		profiles = append(profiles, *domain.NewUserProfile(
			strings.TrimSpace(row[idx[colCustomerID]]),
			parsePreferenceList(row[idx[colCategories]]),
			parsePreferenceList(row[idx[colBrands]]),
		))
	}

	return profiles, nil
}

// parsePreferenceList разбирает значение колонки предпочтений:
// сначала как JSON (массив или скаляр), при неудаче — как строку
// через запятую. Каждый элемент нормализуется в нижний регистр.
func parsePreferenceList(raw string) []string {
	var items []string

	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		items = arr
	} else {
		var scalar string
		if err := json.Unmarshal([]byte(raw), &scalar); err == nil {
			items = []string{scalar}
		} else {
			items = strings.Split(raw, ",")
		}
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		if v := strings.ToLower(strings.TrimSpace(item)); v != "" {
			result = append(result, v)
		}
	}

	return result
}
