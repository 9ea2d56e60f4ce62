package summarizer

import (
	"fmt"
	"sort"

	"docdigest/internal/domain"
	"docdigest/internal/normalize"
)

// DefaultMaxSentences is the summary length used when none is configured.
const DefaultMaxSentences = 3

// ScoredSentence is a summary candidate. Index is the position of its first
// occurrence in the segmented text.
type ScoredSentence struct {
	Index       int    `json:"index"`
	Text        string `json:"text"`
	Score       int    `json:"score"`
	Occurrences int    `json:"occurrences"`
}

// FrequencyTable maps a normalized token to its occurrence count.
type FrequencyTable map[string]int

// BuildFrequencyTable counts every token of the stream.
func BuildFrequencyTable(tokens []string) FrequencyTable {
	ft := make(FrequencyTable, len(tokens))
	for _, tok := range tokens {
		ft[tok]++
	}
	return ft
}

// Count returns the frequency of token, zero when it is absent.
func (f FrequencyTable) Count(token string) int { return f[token] }

// Option configures a FrequencySummarizer.
type Option func(*FrequencySummarizer)

// WithMergeDuplicates controls whether sentences with identical text are
// collapsed into one candidate carrying the summed score of every
// occurrence. Enabled by default.
func WithMergeDuplicates(merge bool) Option {
	return func(s *FrequencySummarizer) { s.mergeDuplicates = merge }
}

// FrequencySummarizer ranks sentences by the document-wide frequency of
// their normalized words and returns the best ones verbatim.
type FrequencySummarizer struct {
	segmenter       domain.Segmenter
	tokenizer       domain.Tokenizer
	normalizer      *normalize.Normalizer
	mergeDuplicates bool
}

// NewFrequencySummarizer creates a frequency-based sentence ranker.
func NewFrequencySummarizer(seg domain.Segmenter, tok domain.Tokenizer, norm *normalize.Normalizer, opts ...Option) *FrequencySummarizer {
	s := &FrequencySummarizer{
		segmenter:       seg,
		tokenizer:       tok,
		normalizer:      norm,
		mergeDuplicates: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize returns the formatted top maxSentences sentences in descending
// score order. A non-positive maxSentences yields the header only.
func (s *FrequencySummarizer) Summarize(text string, maxSentences int) (string, error) {
	ranked, err := s.Rank(text)
	if err != nil {
		return "", err
	}
	return Format(Top(ranked, maxSentences)), nil
}

// Rank scores every sentence of text and returns all candidates sorted by
// descending score. Equal scores keep document order.
func (s *FrequencySummarizer) Rank(text string) ([]ScoredSentence, error) {
	ranked, _, err := s.Score(text)
	return ranked, err
}

// Score is Rank that also returns the segmented sentences, in document
// order, that the candidates were drawn from.
func (s *FrequencySummarizer) Score(text string) ([]ScoredSentence, []string, error) {
	sentences, err := s.segmenter.Segment(text)
	if err != nil {
		return nil, nil, fmt.Errorf("segmenting text: %w", err)
	}
	if len(sentences) == 0 {
		return nil, nil, nil
	}

	docTokens, err := s.tokens(text)
	if err != nil {
		return nil, nil, err
	}
	freq := BuildFrequencyTable(docTokens)

	scored := make([]ScoredSentence, 0, len(sentences))
	seen := make(map[string]int)
	for i, sent := range sentences {
		toks, err := s.tokens(sent)
		if err != nil {
			return nil, nil, err
		}
		score := 0
		for _, tok := range toks {
			score += freq.Count(tok)
		}
		if s.mergeDuplicates {
			if pos, ok := seen[sent]; ok {
				scored[pos].Score += score
				scored[pos].Occurrences++
				continue
			}
			seen[sent] = len(scored)
		}
		scored = append(scored, ScoredSentence{Index: i, Text: sent, Score: score, Occurrences: 1})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return scored, sentences, nil
}

// tokens re-tokenizes the normalized form of text.
func (s *FrequencySummarizer) tokens(text string) ([]string, error) {
	toks, err := s.tokenizer.Tokenize(s.normalizer.Normalize(text))
	if err != nil {
		return nil, fmt.Errorf("tokenizing text: %w", err)
	}
	return toks, nil
}

// Top returns at most n leading candidates. A non-positive n returns none.
func Top(ranked []ScoredSentence, n int) []ScoredSentence {
	if n <= 0 {
		return nil
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
