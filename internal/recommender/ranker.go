package recommender

import (
	"sort"

	"github.com/DRSN-tech/recommender-backend/pkg/e"
)

// Match — кандидат с его косинусной близостью к запросу.
type Match struct {
	Index int
	Score float64
}

// Rank упорядочивает кандидатов по убыванию близости к запросу.
// При равенстве очков сохраняется исходный порядок каталога.
// Если все очки равны нулю, возвращает отсортированный список вместе
// с e.ErrZeroSimilarity: политику отката выбирает вызывающая сторона.
func Rank(query DocumentVector, docs []DocumentVector) ([]Match, error) {
	matches := make([]Match, len(docs))
	allZero := true
	for i, doc := range docs {
		score := query.Dot(doc)
		if score != 0 {
			allZero = false
		}
		matches[i] = Match{Index: i, Score: score}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})

	if allZero {
		return matches, e.ErrZeroSimilarity
	}

	return matches, nil
}
