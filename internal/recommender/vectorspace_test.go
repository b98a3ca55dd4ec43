package recommender

import (
	"testing"

	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Wool COAT", "wool coat"},
		{"commas removed", "warm, wool, coat", "warm wool coat"},
		{"trimmed", "  winter jacket  ", "winter jacket"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestTokenizeDropsStopwordsAndShortTokens(t *testing.T) {
	tokens := Tokenize("The wool coat is on a hanger")

	assert.Equal(t, []string{"wool", "coat", "hanger"}, tokens)
}

func TestFitEmptyCorpus(t *testing.T) {
	_, err := Fit(nil)
	require.ErrorIs(t, err, e.ErrEmptyCorpus)

	// документы, пустые после нормализации, тоже не дают словаря
	_, err = Fit([]string{"  ", ", ,", "a the"})
	require.ErrorIs(t, err, e.ErrEmptyCorpus)
}

func TestProjectRoundTrip(t *testing.T) {
	corpus := []string{
		"wool coat warm winter",
		"cotton shirt light summer",
		"wool scarf winter",
	}

	space, err := Fit(corpus)
	require.NoError(t, err)

	for i, doc := range corpus {
		projected := space.Project(doc)
		stored := space.DocVector(i)

		require.Len(t, projected, len(stored), "doc %d", i)
		for idx, w := range stored {
			assert.InDelta(t, w, projected[idx], 1e-12, "doc %d term %d", i, idx)
		}
	}
}

func TestProjectUnknownTermsDropped(t *testing.T) {
	space, err := Fit([]string{"wool coat", "silk scarf"})
	require.NoError(t, err)

	assert.Empty(t, space.Project("quantum spaceship"))
}

func TestCosineSelfAndSymmetry(t *testing.T) {
	space, err := Fit([]string{"wool coat warm", "cotton shirt", "wool scarf"})
	require.NoError(t, err)

	for i := range space.Docs() {
		v := space.DocVector(i)
		assert.InDelta(t, 1.0, v.Dot(v), 1e-9)
	}

	a, b := space.DocVector(0), space.DocVector(2)
	assert.InDelta(t, a.Dot(b), b.Dot(a), 1e-12)
	assert.GreaterOrEqual(t, a.Dot(b), 0.0)
	assert.LessOrEqual(t, a.Dot(b), 1.0)
}

func TestDense(t *testing.T) {
	space, err := Fit([]string{"wool coat", "wool scarf"})
	require.NoError(t, err)

	dense, err := space.DocVector(0).Dense(space.Dim())
	require.NoError(t, err)
	require.Len(t, dense, space.Dim())

	var nonZero int
	for _, w := range dense {
		if w != 0 {
			nonZero++
		}
	}
	assert.Equal(t, len(space.DocVector(0)), nonZero)
}

func TestDenseRejectsForeignSpace(t *testing.T) {
	space, err := Fit([]string{"wool coat", "wool scarf", "silk saree"})
	require.NoError(t, err)

	// вектор большего пространства не помещается в усеченную размерность
	_, err = space.DocVector(2).Dense(1)
	assert.ErrorIs(t, err, e.ErrVectorDimension)
}
