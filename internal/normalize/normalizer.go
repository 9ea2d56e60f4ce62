package normalize

import (
	"strings"
	"unicode"

	"docdigest/internal/lexicon"
)

// Normalizer strips punctuation, lower-cases and removes stop words from a
// text span. The result is only used for scoring; callers keep the original
// text for output.
type Normalizer struct {
	stopwords lexicon.Set
}

// New returns a Normalizer filtering the given stop words.
func New(stopwords lexicon.Set) *Normalizer {
	return &Normalizer{stopwords: stopwords}
}

// Normalize returns the filtered tokens of text joined by single spaces.
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// Tokens returns the normalized token sequence of text.
func (n *Normalizer) Tokens(text string) []string {
	if text == "" {
		return nil
	}
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, text)

	fields := strings.Fields(stripped)
	out := fields[:0]
	for _, f := range fields {
		if !isAlnum(f) || n.stopwords.Contains(f) {
			continue
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isAlnum(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
