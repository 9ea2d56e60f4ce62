package retrieval

import (
	"math"
	"reflect"
	"testing"

	"docdigest/internal/domain"
	"docdigest/internal/lexicon"
	"docdigest/internal/normalize"
)

var sentences = []domain.Sentence{
	{Index: 0, Text: "Cats sleep sixteen hours a day."},
	{Index: 1, Text: "Dogs bark at strangers."},
	{Index: 2, Text: "The sleeping cat dreams."},
}

func analyzer() *Analyzer { return NewAnalyzer(normalize.New(lexicon.English())) }

func TestAnalyzerTerms(t *testing.T) {
	got := analyzer().Terms("The sleeping cats were dreaming!")
	want := []string{"sleep", "cat", "dream"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestRetrieveModes(t *testing.T) {
	for _, mode := range []string{ModeTFIDF, ModeLexical} {
		t.Run(mode, func(t *testing.T) {
			r, err := NewRetriever(analyzer(), mode)
			if err != nil {
				t.Fatal(err)
			}
			hits, err := r.Retrieve("Why do cats sleep?", sentences, 5)
			if err != nil {
				t.Fatalf("Retrieve: %v", err)
			}
			if len(hits) != 2 {
				t.Fatalf("got %d hits, want 2: %+v", len(hits), hits)
			}
			if hits[0].Sentence.Index != 2 || hits[1].Sentence.Index != 0 {
				t.Errorf("hit order = [%d %d], want [2 0]", hits[0].Sentence.Index, hits[1].Sentence.Index)
			}
			if hits[0].Score < hits[1].Score {
				t.Error("hits not sorted by score")
			}
		})
	}
}

func TestRetrieveNoOverlap(t *testing.T) {
	for _, mode := range []string{ModeTFIDF, ModeLexical} {
		t.Run(mode, func(t *testing.T) {
			r, err := NewRetriever(analyzer(), mode)
			if err != nil {
				t.Fatal(err)
			}
			for _, q := range []string{"quantum chromodynamics", "what is it?"} {
				hits, err := r.Retrieve(q, sentences, 3)
				if err != nil {
					t.Fatal(err)
				}
				if len(hits) != 0 {
					t.Errorf("Retrieve(%q) = %+v, want no hits", q, hits)
				}
			}
			if hits, _ := r.Retrieve("cats", nil, 3); hits != nil {
				t.Errorf("expected nil for empty sentences, got %+v", hits)
			}
		})
	}
}

func TestRetrieveTopK(t *testing.T) {
	r, _ := NewRetriever(analyzer(), ModeTFIDF)
	hits, err := r.Retrieve("cat sleep", sentences, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 {
		t.Errorf("got %d hits, want 1", len(hits))
	}
}

func TestNewRetrieverUnknownMode(t *testing.T) {
	if _, err := NewRetriever(analyzer(), "bm25"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestEmbedderNormalized(t *testing.T) {
	e := NewEmbedder(analyzer())
	if _, err := e.Embed("cats"); err == nil {
		t.Error("Embed before Prepare should fail")
	}
	if err := e.Prepare([]string{"the a an"}); err != ErrEmptyVocabulary {
		t.Errorf("Prepare(stop words) = %v, want ErrEmptyVocabulary", err)
	}
	if err := e.Prepare([]string{"cats sleep", "dogs bark"}); err != nil {
		t.Fatal(err)
	}
	if e.Dimension() != 4 {
		t.Errorf("Dimension() = %d, want 4", e.Dimension())
	}
	v, err := e.Embed("cats sleep all day")
	if err != nil {
		t.Fatal(err)
	}
	norm := 0.0
	for _, x := range v {
		norm += x * x
	}
	if math.Abs(norm-1) > 1e-9 {
		t.Errorf("vector norm^2 = %f, want 1", norm)
	}
}

func TestIndexValidation(t *testing.T) {
	if _, err := NewIndex(0); err == nil {
		t.Error("expected error for zero dimension")
	}
	ix, _ := NewIndex(2)
	if err := ix.Add(sentences[:1], [][]float64{{1, 0}, {0, 1}}); err == nil {
		t.Error("expected length mismatch error")
	}
	if err := ix.Add(sentences[:1], [][]float64{{1, 0, 0}}); err == nil {
		t.Error("expected dimension mismatch error")
	}
	if err := ix.Add(sentences[:2], [][]float64{{1, 0}, {1, 0}}); err != nil {
		t.Fatal(err)
	}
	hits := ix.Search([]float64{1, 0}, 5)
	if len(hits) != 2 || hits[0].Sentence.Index != 0 {
		t.Errorf("tied hits should keep insertion order: %+v", hits)
	}
}
