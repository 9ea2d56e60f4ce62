package retrieval

import (
	"errors"
	"sort"
	"sync"

	"docdigest/internal/domain"
)

// Hit is a sentence matched against a question.
type Hit struct {
	Sentence domain.Sentence `json:"sentence"`
	Score    float64         `json:"score"`
}

// Index is an in-memory brute-force cosine index over sentence vectors.
type Index struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	sentences []domain.Sentence
}

func NewIndex(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, errors.New("invalid dimension")
	}
	return &Index{dimension: dimension}, nil
}

// Add appends sentences with their vectors.
func (ix *Index) Add(sentences []domain.Sentence, vectors [][]float64) error {
	if len(sentences) != len(vectors) {
		return errors.New("sentences and vectors length mismatch")
	}
	for _, v := range vectors {
		if len(v) != ix.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.sentences = append(ix.sentences, sentences...)
	ix.vectors = append(ix.vectors, vectors...)
	return nil
}

// Search returns up to topK hits with a positive score, best first. Equal
// scores keep insertion order. Vectors are assumed L2-normalized.
func (ix *Index) Search(vector []float64, topK int) []Hit {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	hits := make([]Hit, 0, len(ix.vectors))
	for i := range ix.vectors {
		if s := dot(ix.vectors[i], vector); s > 1e-9 {
			hits = append(hits, Hit{Sentence: ix.sentences[i], Score: s})
		}
	}
	return top(hits, topK)
}

// Len returns the number of indexed sentences.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.sentences)
}

func top(hits []Hit, topK int) []Hit {
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if topK <= 0 {
		topK = 5
	}
	if topK < len(hits) {
		hits = hits[:topK]
	}
	return hits
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
