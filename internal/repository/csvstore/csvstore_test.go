package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadProducts(t *testing.T) {
	path := writeFile(t, "products.csv",
		"ProductID,Category,Brand,ProductFeatures,Price (INR),Seasons\n"+
			"P001,Clothing,WoolWorks,warm wool coat,599.99,\"Winter, Monsoon\"\n"+
			" P002 ,Footwear,TrailGo,leather boots,1200,winter\n")

	products, err := NewCatalogRepo(path).LoadProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "P001", products[0].ID)
	assert.Equal(t, int64(59999), products[0].Price)
	assert.Equal(t, []string{"winter", "monsoon"}, products[0].Seasons)

	assert.Equal(t, "P002", products[1].ID)
	assert.Equal(t, int64(120000), products[1].Price)
}

func TestLoadProductsBadPrice(t *testing.T) {
	path := writeFile(t, "products.csv",
		"ProductID,Category,Brand,ProductFeatures,Price (INR),Seasons\n"+
			"P001,Clothing,WoolWorks,coat,abc,winter\n")

	_, err := NewCatalogRepo(path).LoadProducts(context.Background())
	require.ErrorIs(t, err, e.ErrInvalidPrice)
}

func TestLoadProductsMissingColumn(t *testing.T) {
	path := writeFile(t, "products.csv", "ProductID,Category\nP001,Clothing\n")

	_, err := NewCatalogRepo(path).LoadProducts(context.Background())
	require.ErrorIs(t, err, e.ErrBadCatalogFile)
}

func TestLoadProfiles(t *testing.T) {
	path := writeFile(t, "users.csv",
		"CustomerID,Preferred Categories,Favorite Brands\n"+
			"U001,\"[\"\"Clothing\"\", \"\"Footwear\"\"]\",\"WoolWorks, TrailGo\"\n"+
			" U002 ,\"\"\"Electronics\"\"\",Voltix\n")

	profiles, err := NewProfileRepo(path).LoadProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, "U001", profiles[0].ID)
	assert.Equal(t, []string{"clothing", "footwear"}, profiles[0].PreferredCategories)
	assert.Equal(t, []string{"woolworks", "trailgo"}, profiles[0].FavoriteBrands)

	// JSON-скаляр и простая строка
	assert.Equal(t, "U002", profiles[1].ID)
	assert.Equal(t, []string{"electronics"}, profiles[1].PreferredCategories)
	assert.Equal(t, []string{"voltix"}, profiles[1].FavoriteBrands)
}

func TestParsePreferenceListFallbacks(t *testing.T) {
	assert.Equal(t, []string{"clothing", "footwear"}, parsePreferenceList("Clothing, Footwear"))
	assert.Equal(t, []string{"clothing"}, parsePreferenceList(`["Clothing"]`))
	assert.Equal(t, []string{"clothing"}, parsePreferenceList(`"Clothing"`))
	assert.Empty(t, parsePreferenceList("  "))
}
