package retrieval

import (
	"errors"
	"math"
	"sort"

	"github.com/kljensen/snowball"

	"docdigest/internal/normalize"
)

// ErrEmptyVocabulary is returned by Prepare when the corpus has no terms.
var ErrEmptyVocabulary = errors.New("retrieval: no terms in corpus")

// Analyzer turns text into stemmed, stop-word free terms.
type Analyzer struct {
	normalizer *normalize.Normalizer
}

func NewAnalyzer(n *normalize.Normalizer) *Analyzer {
	return &Analyzer{normalizer: n}
}

// Terms returns the snowball stems of the normalized tokens of text.
func (a *Analyzer) Terms(text string) []string {
	toks := a.normalizer.Tokens(text)
	for i, tok := range toks {
		if stemmed, err := snowball.Stem(tok, "english", true); err == nil && stemmed != "" {
			toks[i] = stemmed
		}
	}
	return toks
}

// Embedder is a TF-IDF vectorizer over analyzer terms.
type Embedder struct {
	analyzer   *Analyzer
	vocabulary map[string]int
	idf        []float64
	dimension  int
	prepared   bool
}

// NewEmbedder creates an unprepared TF-IDF embedder.
func NewEmbedder(a *Analyzer) *Embedder {
	return &Embedder{analyzer: a, vocabulary: make(map[string]int)}
}

// Prepare builds the vocabulary and IDF values from the corpus.
func (e *Embedder) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for TF-IDF prepare")
	}
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, term := range e.analyzer.Terms(text) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	if len(df) == 0 {
		return ErrEmptyVocabulary
	}
	// stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		// smoothed IDF
		e.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	e.dimension = len(terms)
	e.prepared = true
	return nil
}

// Dimension returns the vocabulary size.
func (e *Embedder) Dimension() int { return e.dimension }

// Embed returns the L2-normalized TF-IDF vector of text. Terms outside the
// vocabulary are ignored, so the vector may be all zeros.
func (e *Embedder) Embed(text string) ([]float64, error) {
	if !e.prepared {
		return nil, errors.New("tfidf embedder not prepared")
	}
	vec := make([]float64, e.dimension)
	tf := make(map[int]int)
	total := 0
	for _, term := range e.analyzer.Terms(text) {
		if idx, ok := e.vocabulary[term]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * e.idf[idx]
	}
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}
