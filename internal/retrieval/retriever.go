// Package retrieval selects the document sentences most relevant to a question.
package retrieval

import (
	"errors"
	"fmt"
	"math"

	"docdigest/internal/domain"
)

// Ranking modes.
const (
	ModeTFIDF   = "tfidf"
	ModeLexical = "lexical"
)

// Retriever ranks sentences against a question, either by TF-IDF cosine
// similarity or by lexical overlap of stemmed term sets.
type Retriever struct {
	analyzer *Analyzer
	mode     string
}

// NewRetriever returns a retriever for mode; an empty mode means ModeTFIDF.
func NewRetriever(a *Analyzer, mode string) (*Retriever, error) {
	switch mode {
	case "", ModeTFIDF:
		mode = ModeTFIDF
	case ModeLexical:
	default:
		return nil, fmt.Errorf("unknown retrieval mode: %s", mode)
	}
	return &Retriever{analyzer: a, mode: mode}, nil
}

// Retrieve returns up to topK sentences related to question, best first.
// Each call builds its own index.
func (r *Retriever) Retrieve(question string, sentences []domain.Sentence, topK int) ([]Hit, error) {
	if len(sentences) == 0 {
		return nil, nil
	}
	if r.mode == ModeLexical {
		return r.lexical(question, sentences, topK), nil
	}
	corpus := make([]string, len(sentences))
	for i, s := range sentences {
		corpus[i] = s.Text
	}

	emb := NewEmbedder(r.analyzer)
	if err := emb.Prepare(corpus); err != nil {
		if errors.Is(err, ErrEmptyVocabulary) {
			return nil, nil
		}
		return nil, err
	}
	qvec, err := emb.Embed(question)
	if err != nil {
		return nil, err
	}
	if isZero(qvec) {
		return nil, nil
	}

	ix, err := NewIndex(emb.Dimension())
	if err != nil {
		return nil, err
	}
	vectors := make([][]float64, len(sentences))
	for i, text := range corpus {
		if vectors[i], err = emb.Embed(text); err != nil {
			return nil, fmt.Errorf("embedding sentence %d: %w", i, err)
		}
	}
	if err := ix.Add(sentences, vectors); err != nil {
		return nil, err
	}
	return ix.Search(qvec, topK), nil
}

// lexical scores sentences by the Ochiai coefficient of their term sets.
func (r *Retriever) lexical(question string, sentences []domain.Sentence, topK int) []Hit {
	qset := termSet(r.analyzer.Terms(question))
	if len(qset) == 0 {
		return nil
	}
	var hits []Hit
	for _, s := range sentences {
		sset := termSet(r.analyzer.Terms(s.Text))
		if len(sset) == 0 {
			continue
		}
		inter := 0
		for t := range sset {
			if _, ok := qset[t]; ok {
				inter++
			}
		}
		if inter == 0 {
			continue
		}
		score := float64(inter) / math.Sqrt(float64(len(qset))*float64(len(sset)))
		hits = append(hits, Hit{Sentence: s, Score: score})
	}
	return top(hits, topK)
}

func termSet(terms []string) map[string]struct{} {
	m := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		m[t] = struct{}{}
	}
	return m
}

func isZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}
