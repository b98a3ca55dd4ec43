package domain

import "strings"

// Product описывает товар каталога. Неизменяем после загрузки каталога.
type Product struct {
	ID       string
	Category string
	Brand    string
	Features string   // свободное текстовое описание товара
	Price    int64    // Цена хранится в пайсах (1/100 рупии)
	Seasons  []string // метки сезонов в нижнем регистре
}

func NewProduct(id, category, brand, features string, price int64, seasons []string) *Product {
	return &Product{
		ID:       id,
		Category: category,
		Brand:    brand,
		Features: features,
		Price:    price,
		Seasons:  seasons,
	}
}

// InSeason возвращает true, если товар помечен указанным сезоном.
func (p *Product) InSeason(season string) bool {
	season = strings.ToLower(strings.TrimSpace(season))
	for _, s := range p.Seasons {
		if s == season {
			return true
		}
	}

	return false
}
