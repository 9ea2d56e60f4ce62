package segment

import (
	"regexp"
	"unicode"

	"docdigest/internal/domain"
)

// Words splits text into word tokens and standalone punctuation tokens.
// Contractions stay whole ("isn't"), every other non-space rune that is
// not part of a word is its own token.
type Words struct {
	pattern *regexp.Regexp
}

func NewWords() *Words {
	return &Words{pattern: regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*|[^\p{L}\p{N}\s]`)}
}

func (w *Words) Tokenize(text string) ([]string, error) {
	return w.pattern.FindAllString(text, -1), nil
}

// CountWords counts the tokens of every sentence, punctuation included and
// stop words not filtered.
func CountWords(sentences []string, tok domain.Tokenizer) (int, error) {
	total := 0
	for _, s := range sentences {
		toks, err := tok.Tokenize(s)
		if err != nil {
			return 0, err
		}
		total += len(toks)
	}
	return total, nil
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
