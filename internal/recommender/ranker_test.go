package recommender

import (
	"testing"

	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOrdersByScoreDescending(t *testing.T) {
	space, err := Fit([]string{
		"wool coat winter",
		"cotton shirt summer",
		"wool scarf winter",
	})
	require.NoError(t, err)

	matches, err := Rank(space.Project("wool winter"), space.Docs())
	require.NoError(t, err)
	require.Len(t, matches, 3)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}

	// летняя рубашка не содержит термов запроса
	assert.Equal(t, 1, matches[2].Index)
	assert.Zero(t, matches[2].Score)
}

func TestRankDeterministic(t *testing.T) {
	space, err := Fit([]string{"wool coat", "silk scarf", "wool scarf"})
	require.NoError(t, err)

	query := space.Project("wool")
	first, err := Rank(query, space.Docs())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Rank(query, space.Docs())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRankTiesKeepCatalogOrder(t *testing.T) {
	space, err := Fit([]string{"red shoes", "blue shoes", "green hat"})
	require.NoError(t, err)

	matches, err := Rank(space.Project("hat"), space.Docs())
	require.NoError(t, err)

	// обувь дает одинаковый ноль: исходный порядок каталога сохраняется
	assert.Equal(t, 2, matches[0].Index)
	assert.Equal(t, 0, matches[1].Index)
	assert.Equal(t, 1, matches[2].Index)
}

func TestRankAllZeroSignalled(t *testing.T) {
	space, err := Fit([]string{"wool coat", "silk scarf"})
	require.NoError(t, err)

	matches, err := Rank(space.Project("quantum spaceship"), space.Docs())
	require.ErrorIs(t, err, e.ErrZeroSimilarity)

	// кандидаты все равно возвращаются в порядке каталога
	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].Index)
	assert.Equal(t, 1, matches[1].Index)
}
