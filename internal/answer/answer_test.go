package answer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"docdigest/internal/domain"
	"docdigest/internal/lexicon"
	"docdigest/internal/normalize"
	"docdigest/internal/retrieval"
	"docdigest/internal/search"
)

type fakeSearcher struct {
	results []search.Result
	err     error
	query   string
	limit   int
}

func (f *fakeSearcher) Search(_ context.Context, query string, limit int) ([]search.Result, error) {
	f.query, f.limit = query, limit
	return f.results, f.err
}

var docSentences = []domain.Sentence{
	{Index: 0, Text: "Cats sleep sixteen hours a day."},
	{Index: 1, Text: "Dogs bark at strangers."},
}

func newComposer(t *testing.T, s search.Searcher) *Composer {
	t.Helper()
	r, err := retrieval.NewRetriever(retrieval.NewAnalyzer(normalize.New(lexicon.English())), retrieval.ModeTFIDF)
	if err != nil {
		t.Fatal(err)
	}
	return NewComposer(r, s, 2, 2, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAnswerBlendsDocumentsAndWeb(t *testing.T) {
	fs := &fakeSearcher{results: []search.Result{
		{Title: "Cat sleep", Link: "https://example.org/cats", Snippet: "Cats conserve energy."},
		{Link: "https://example.org/nosnippet"},
	}}
	c := newComposer(t, fs)

	a, err := c.Answer(context.Background(), "  How long do cats sleep? ", docSentences)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if fs.query != "How long do cats sleep?" || fs.limit != 2 {
		t.Errorf("searcher got query %q limit %d", fs.query, fs.limit)
	}
	if len(a.Context) != 1 || a.Context[0] != "Cats sleep sixteen hours a day." {
		t.Errorf("Context = %q", a.Context)
	}
	want := "From your documents: Cats sleep sixteen hours a day.\n\n" +
		"From the web: Cats conserve energy.\n\n" +
		"Sources:\n1. Cat sleep - https://example.org/cats\n2. https://example.org/nosnippet - https://example.org/nosnippet"
	if a.Text != want {
		t.Errorf("Text = %q\nwant %q", a.Text, want)
	}
}

func TestAnswerSearchFailureDegrades(t *testing.T) {
	c := newComposer(t, &fakeSearcher{err: errors.New("network down")})
	a, err := c.Answer(context.Background(), "Do dogs bark?", docSentences)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if a.Text != "From your documents: Dogs bark at strangers." {
		t.Errorf("Text = %q", a.Text)
	}
	if len(a.Sources) != 0 {
		t.Errorf("Sources = %+v, want none", a.Sources)
	}
}

func TestAnswerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newComposer(t, &fakeSearcher{err: context.Canceled})
	if _, err := c.Answer(ctx, "Do dogs bark?", docSentences); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestAnswerNothingFound(t *testing.T) {
	c := newComposer(t, search.Disabled{})
	a, err := c.Answer(context.Background(), "What is quantum chromodynamics?", docSentences)
	if err != nil {
		t.Fatal(err)
	}
	if a.Text != NoInformation {
		t.Errorf("Text = %q, want %q", a.Text, NoInformation)
	}
}

func TestAnswerEmptyQuestion(t *testing.T) {
	c := newComposer(t, nil)
	if _, err := c.Answer(context.Background(), "   ", docSentences); !errors.Is(err, ErrEmptyQuestion) {
		t.Errorf("error = %v, want ErrEmptyQuestion", err)
	}
}
