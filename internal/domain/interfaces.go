package domain

import "context"

// Document is one accepted input file and its extracted text.
type Document struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	Name      string `json:"name"`
	Content   string `json:"-"`
	WordCount int    `json:"word_count"`
}

// Sentence is one segmented unit of the combined document text.
type Sentence struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Segmenter splits text into sentences in document order.
type Segmenter interface {
	Segment(text string) ([]string, error)
}

// Tokenizer splits text into raw word and punctuation tokens.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// Summarizer produces a formatted extractive summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Extractor returns the plain text of a document on disk.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
	SupportedFormats() []string
}
