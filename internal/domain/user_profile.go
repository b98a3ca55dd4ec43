package domain

// UserProfile описывает предпочтения покупателя.
// Только для чтения: движок рекомендаций никогда не изменяет профиль.
type UserProfile struct {
	ID                  string
	PreferredCategories []string // нормализованные категории (lowercase)
	FavoriteBrands      []string // нормализованные бренды (lowercase)
}

func NewUserProfile(id string, categories, brands []string) *UserProfile {
	return &UserProfile{
		ID:                  id,
		PreferredCategories: categories,
		FavoriteBrands:      brands,
	}
}
