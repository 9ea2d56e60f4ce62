package summarizer

import (
	"errors"
	"strings"
	"testing"

	"docdigest/internal/lexicon"
	"docdigest/internal/normalize"
	"docdigest/internal/segment"
)

const catText = "The cat sat. The cat sat on the mat. Dogs bark loudly at cats."

func newTestSummarizer(t *testing.T, stop lexicon.Set, opts ...Option) *FrequencySummarizer {
	t.Helper()
	p, err := segment.NewPunkt()
	if err != nil {
		t.Fatalf("NewPunkt: %v", err)
	}
	return NewFrequencySummarizer(p, segment.NewWords(), normalize.New(stop), opts...)
}

func TestSummarizeCatScenario(t *testing.T) {
	s := newTestSummarizer(t, lexicon.New("the", "on", "at"))

	ranked, err := s.Rank(catText)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	wantScores := map[string]int{
		"The cat sat.":              4,
		"The cat sat on the mat.":   5,
		"Dogs bark loudly at cats.": 4,
	}
	if len(ranked) != len(wantScores) {
		t.Fatalf("Rank returned %d sentences, want %d", len(ranked), len(wantScores))
	}
	for _, r := range ranked {
		if r.Score != wantScores[r.Text] {
			t.Errorf("score(%q) = %d, want %d", r.Text, r.Score, wantScores[r.Text])
		}
	}

	got, err := s.Summarize(catText, 2)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	want := "Key points:\n\n1. The cat sat on the mat.\n2. The cat sat.\n"
	if got != want {
		t.Errorf("Summarize() = %q, want %q", got, want)
	}
}

func TestFrequencyTable(t *testing.T) {
	n := normalize.New(lexicon.New("the", "on", "at"))
	toks, err := segment.NewWords().Tokenize(n.Normalize(catText))
	if err != nil {
		t.Fatal(err)
	}
	ft := BuildFrequencyTable(toks)
	want := map[string]int{"cat": 2, "sat": 2, "mat": 1, "dogs": 1, "bark": 1, "loudly": 1, "cats": 1}
	if len(ft) != len(want) {
		t.Errorf("table has %d entries, want %d: %v", len(ft), len(want), ft)
	}
	for k, v := range want {
		if ft.Count(k) != v {
			t.Errorf("Count(%q) = %d, want %d", k, ft.Count(k), v)
		}
	}
	if ft.Count("the") != 0 {
		t.Error("stop word should not be counted")
	}
}

func TestSummarizeDegenerate(t *testing.T) {
	s := newTestSummarizer(t, lexicon.English())

	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{"empty text", "", 3, "Key points:\n\n"},
		{"whitespace only", "  \n ", 3, "Key points:\n\n"},
		{"zero sentences requested", catText, 0, "Key points:\n\n"},
		{"negative sentences requested", catText, -4, "Key points:\n\n"},
		{"duplicates collapse", "Cats are great. Cats are great.", 3, "Key points:\n\n1. Cats are great.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Summarize(tt.text, tt.n)
			if err != nil {
				t.Fatalf("Summarize: %v", err)
			}
			if got != tt.want {
				t.Errorf("Summarize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDuplicateMergeSumsScores(t *testing.T) {
	s := newTestSummarizer(t, lexicon.English())
	ranked, err := s.Rank("Cats are great. Cats are great.")
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 1 {
		t.Fatalf("got %d candidates, want 1", len(ranked))
	}
	if ranked[0].Score != 8 || ranked[0].Occurrences != 2 || ranked[0].Index != 0 {
		t.Errorf("merged candidate = %+v, want score 8, 2 occurrences, index 0", ranked[0])
	}
}

func TestDuplicatesKeptWhenMergeDisabled(t *testing.T) {
	s := newTestSummarizer(t, lexicon.English(), WithMergeDuplicates(false))
	got, err := s.Summarize("Cats are great. Cats are great.", 3)
	if err != nil {
		t.Fatal(err)
	}
	want := "Key points:\n\n1. Cats are great.\n2. Cats are great.\n"
	if got != want {
		t.Errorf("Summarize() = %q, want %q", got, want)
	}
}

func TestSummarizeProperties(t *testing.T) {
	texts := []string{
		catText,
		"Research is slow. Research funding is scarce. Funding drives research output. Output matters. Zebras exist.",
		"Alpha beta. Gamma delta. Alpha gamma. Beta delta. Epsilon.",
	}
	s := newTestSummarizer(t, lexicon.English())

	for _, text := range texts {
		ranked, err := s.Rank(text)
		if err != nil {
			t.Fatal(err)
		}
		for n := 0; n <= len(ranked)+2; n++ {
			first, err := s.Summarize(text, n)
			if err != nil {
				t.Fatal(err)
			}
			second, _ := s.Summarize(text, n)
			if first != second {
				t.Errorf("Summarize not deterministic for n=%d", n)
			}
			lines := strings.Count(first, "\n") - 2
			want := n
			if want > len(ranked) {
				want = len(ranked)
			}
			if lines != want {
				t.Errorf("n=%d: got %d numbered lines, want %d", n, lines, want)
			}
		}
		for i := 1; i < len(ranked); i++ {
			prev, cur := ranked[i-1], ranked[i]
			if prev.Score < cur.Score {
				t.Errorf("ranking not descending at %d: %d < %d", i, prev.Score, cur.Score)
			}
			if prev.Score == cur.Score && prev.Index > cur.Index {
				t.Errorf("tie at score %d not in document order: %d before %d", cur.Score, prev.Index, cur.Index)
			}
		}
	}
}

func TestZeroScoreSentencesAreCandidates(t *testing.T) {
	s := NewFrequencySummarizer(segment.NewRegex(), segment.NewWords(), normalize.New(lexicon.English()))
	ranked, err := s.Rank("Cats purr. It is what it is.")
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 2 {
		t.Fatalf("got %d candidates, want 2", len(ranked))
	}
	if ranked[1].Text != "It is what it is." || ranked[1].Score != 0 {
		t.Errorf("last candidate = %+v, want zero-score stop-word sentence", ranked[1])
	}
}

type failingSegmenter struct{ err error }

func (f failingSegmenter) Segment(string) ([]string, error) { return nil, f.err }

type failingTokenizer struct{ err error }

func (f failingTokenizer) Tokenize(string) ([]string, error) { return nil, f.err }

func TestCollaboratorErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	norm := normalize.New(lexicon.English())

	s := NewFrequencySummarizer(failingSegmenter{boom}, segment.NewWords(), norm)
	if _, err := s.Summarize(catText, 3); !errors.Is(err, boom) {
		t.Errorf("segmenter error = %v, want wrapped boom", err)
	}

	s = NewFrequencySummarizer(segment.NewRegex(), failingTokenizer{boom}, norm)
	if _, err := s.Summarize(catText, 3); !errors.Is(err, boom) {
		t.Errorf("tokenizer error = %v, want wrapped boom", err)
	}
}

func TestFormat(t *testing.T) {
	got := Format([]ScoredSentence{{Text: "First."}, {Text: "Second sentence, kept whole."}})
	want := "Key points:\n\n1. First.\n2. Second sentence, kept whole.\n"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatCollapsesLineBreaks(t *testing.T) {
	s := newTestSummarizer(t, lexicon.English())
	text := "Introduction\nThe cat sat on the\nmat today. Dogs bark."

	ranked, err := s.Rank(text)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ranked[0].Text, "\n") {
		t.Errorf("ranked text should keep its line breaks: %q", ranked[0].Text)
	}

	got, err := s.Summarize(text, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := "Key points:\n\n1. Introduction The cat sat on the mat today.\n2. Dogs bark.\n"
	if got != want {
		t.Errorf("Summarize() = %q, want %q", got, want)
	}
	if lines := strings.Count(got, "\n"); lines != 2+2 {
		t.Errorf("got %d lines, want header plus one per sentence", lines)
	}
}

func TestScoreReturnsSegmentedSentences(t *testing.T) {
	s := newTestSummarizer(t, lexicon.English())
	ranked, sentences, err := s.Score("Dogs bark. Dogs bark. Cats purr.")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Dogs bark.", "Dogs bark.", "Cats purr."}
	if strings.Join(sentences, "|") != strings.Join(want, "|") {
		t.Errorf("sentences = %q, want %q", sentences, want)
	}
	if len(ranked) != 2 {
		t.Errorf("got %d candidates, want 2 after merging", len(ranked))
	}
}
