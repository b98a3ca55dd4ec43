package recommender

import (
	"math"
	"sort"

	"github.com/DRSN-tech/recommender-backend/pkg/e"
)

// DocumentVector — разреженный L2-нормированный TF-IDF вектор
// в координатах фиксированного словаря (индекс колонки -> вес).
type DocumentVector map[int]float64

// Dot возвращает скалярное произведение двух разреженных векторов.
// Для нормированных векторов это косинусная близость.
func (v DocumentVector) Dot(other DocumentVector) float64 {
	// итерируем по меньшему вектору
	if len(other) < len(v) {
		v, other = other, v
	}

	var sum float64
	for idx, w := range v {
		sum += w * other[idx]
	}

	return sum
}

// Dense разворачивает вектор в плотный []float32 указанной размерности.
// Возвращает e.ErrVectorDimension, если координата вектора выходит за
// пределы словаря: такой вектор построен в другом пространстве.
func (v DocumentVector) Dense(dim int) ([]float32, error) {
	dense := make([]float32, dim)
	for idx, w := range v {
		if idx < 0 || idx >= dim {
			return nil, e.ErrVectorDimension
		}
		dense[idx] = float32(w)
	}

	return dense, nil
}

// VectorSpace — словарь с IDF-весами, построенный один раз по корпусу.
// После Fit словарь неизменяем: проекции запросов не расширяют его.
type VectorSpace struct {
	vocab map[string]int
	idf   []float64
	docs  []DocumentVector
}

// Fit строит словарь и IDF-веса по корпусу документов и сохраняет
// вектор каждого документа. Возвращает e.ErrEmptyCorpus, если корпус
// пуст или все документы пусты после нормализации.
func Fit(corpus []string) (*VectorSpace, error) {
	if len(corpus) == 0 {
		return nil, e.ErrEmptyCorpus
	}

	tokenized := make([][]string, len(corpus))
	df := make(map[string]int)
	for i, doc := range corpus {
		tokens := Tokenize(doc)
		tokenized[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	if len(df) == 0 {
		return nil, e.ErrEmptyCorpus
	}

	// словарь сортируется для детерминированной нумерации колонок
	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	space := &VectorSpace{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}

	n := float64(len(corpus))
	for i, t := range terms {
		space.vocab[t] = i
		// сглаженный IDF: ln((1+n)/(1+df)) + 1
		space.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	space.docs = make([]DocumentVector, len(corpus))
	for i, tokens := range tokenized {
		space.docs[i] = space.vectorize(tokens)
	}

	return space, nil
}

// Project отображает произвольный текст в фиксированный словарь.
// Термы вне словаря отбрасываются; в пределе получается нулевой вектор.
func (s *VectorSpace) Project(text string) DocumentVector {
	return s.vectorize(Tokenize(text))
}

// Dim возвращает размер словаря.
func (s *VectorSpace) Dim() int {
	return len(s.vocab)
}

// DocVector возвращает сохраненный при Fit вектор документа корпуса.
func (s *VectorSpace) DocVector(i int) DocumentVector {
	return s.docs[i]
}

// Docs возвращает векторы всех документов корпуса в исходном порядке.
func (s *VectorSpace) Docs() []DocumentVector {
	return s.docs
}

func (s *VectorSpace) vectorize(tokens []string) DocumentVector {
	vec := make(DocumentVector)
	for _, t := range tokens {
		if idx, ok := s.vocab[t]; ok {
			vec[idx] += s.idf[idx]
		}
	}

	// L2-нормировка, чтобы косинус сводился к скалярному произведению
	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx, w := range vec {
			vec[idx] = w / norm
		}
	}

	return vec
}
