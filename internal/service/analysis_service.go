package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"docdigest/internal/answer"
	"docdigest/internal/domain"
	"docdigest/internal/entity"
	"docdigest/internal/extract"
	"docdigest/internal/segment"
	"docdigest/internal/summarizer"
)

// ErrNoDocuments is returned when none of the given paths is an accepted document.
var ErrNoDocuments = errors.New("no accepted documents found")

// Ranker scores every sentence of a text, best first, and returns the
// segmented sentences it scored in document order.
type Ranker interface {
	Score(text string) ([]summarizer.ScoredSentence, []string, error)
}

// Report is the outcome of analyzing one document set.
type Report struct {
	Documents []domain.Document           `json:"documents"`
	Summary   string                      `json:"summary"`
	Ranked    []summarizer.ScoredSentence `json:"ranked"`
	Entities  entity.Listing              `json:"entities"`
	Sentences []domain.Sentence           `json:"-"`
}

type AnalysisService struct {
	extractors   *extract.Registry
	segmenter    domain.Segmenter
	tokenizer    domain.Tokenizer
	ranker       Ranker
	recognizer   entity.Recognizer
	composer     *answer.Composer
	maxSentences int
	logger       *slog.Logger
}

// NewAnalysisService wires the pipeline. A nil recognizer disables the
// entity listing.
func NewAnalysisService(extractors *extract.Registry, segmenter domain.Segmenter, tokenizer domain.Tokenizer, ranker Ranker, recognizer entity.Recognizer, composer *answer.Composer, maxSentences int, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		extractors:   extractors,
		segmenter:    segmenter,
		tokenizer:    tokenizer,
		ranker:       ranker,
		recognizer:   recognizer,
		composer:     composer,
		maxSentences: maxSentences,
		logger:       logger,
	}
}

// Analyze extracts, counts and summarizes the documents named by paths.
// Paths may be glob patterns; files with a format outside the allow-list
// are skipped and a file named more than once is read once.
func (s *AnalysisService) Analyze(ctx context.Context, paths []string) (*Report, error) {
	var documents []domain.Document
	seen := make(map[string]struct{})
	for _, p := range paths {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", p, err)
		}
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			key := filepath.Clean(m)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			if !s.extractors.Allowed(m) {
				s.logger.Info("skipping unsupported document", "path", m)
				continue
			}
			doc, err := s.load(ctx, m)
			if err != nil {
				return nil, err
			}
			documents = append(documents, doc)
		}
	}
	if len(documents) == 0 {
		return nil, ErrNoDocuments
	}

	var all strings.Builder
	for i, d := range documents {
		if i > 0 {
			all.WriteString("\n")
		}
		all.WriteString(d.Content)
	}
	combined := all.String()

	ranked, texts, err := s.ranker.Score(combined)
	if err != nil {
		return nil, fmt.Errorf("summarizing: %w", err)
	}
	sentences := make([]domain.Sentence, len(texts))
	for i, t := range texts {
		sentences[i] = domain.Sentence{Index: i, Text: t}
	}

	report := &Report{
		Documents: documents,
		Summary:   summarizer.Format(summarizer.Top(ranked, s.maxSentences)),
		Ranked:    ranked,
		Sentences: sentences,
	}
	if s.recognizer != nil {
		if report.Entities, err = s.entities(texts); err != nil {
			return nil, err
		}
	}
	s.logger.Info("documents analyzed", "documents", len(documents), "sentences", len(sentences))
	return report, nil
}

// Ask answers question against the sentences of report.
func (s *AnalysisService) Ask(ctx context.Context, report *Report, question string) (*answer.Answer, error) {
	var sentences []domain.Sentence
	if report != nil {
		sentences = report.Sentences
	}
	return s.composer.Answer(ctx, question, sentences)
}

func (s *AnalysisService) load(ctx context.Context, path string) (domain.Document, error) {
	text, err := s.extractors.Extract(ctx, path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("extracting %s: %w", path, err)
	}
	sentences, err := s.segmenter.Segment(text)
	if err != nil {
		return domain.Document{}, fmt.Errorf("segmenting %s: %w", path, err)
	}
	count, err := segment.CountWords(sentences, s.tokenizer)
	if err != nil {
		return domain.Document{}, fmt.Errorf("counting words in %s: %w", path, err)
	}
	return domain.Document{
		ID:        hashString(path),
		Path:      path,
		Name:      filepath.Base(path),
		Content:   text,
		WordCount: count,
	}, nil
}

func (s *AnalysisService) entities(sentences []string) (entity.Listing, error) {
	tokenized := make([][]string, 0, len(sentences))
	for _, sent := range sentences {
		toks, err := s.tokenizer.Tokenize(sent)
		if err != nil {
			return entity.Listing{}, fmt.Errorf("tokenizing: %w", err)
		}
		tokenized = append(tokenized, toks)
	}
	chunks, err := s.recognizer.Recognize(tokenized)
	if err != nil {
		return entity.Listing{}, fmt.Errorf("recognizing entities: %w", err)
	}
	return entity.BuildListing(chunks), nil
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
