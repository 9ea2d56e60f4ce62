// Package segment provides sentence segmentation and word tokenization.
package segment

import (
	"fmt"
	"strings"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// Punkt segments English text with the pre-trained Punkt model, which
// handles abbreviations, initials and ellipses.
type Punkt struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunkt loads the English Punkt model.
func NewPunkt() (*Punkt, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("loading punkt model: %w", err)
	}
	return &Punkt{tokenizer: tok}, nil
}

// Segment returns trimmed, non-empty sentences in document order.
func (p *Punkt) Segment(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	sents := p.tokenizer.Tokenize(text)
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		t := strings.TrimSpace(s.Text)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
