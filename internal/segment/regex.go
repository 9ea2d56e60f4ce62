package segment

import (
	"regexp"
	"strings"
)

// Regex splits text on sentence-final punctuation. It has no notion of
// abbreviations; use Punkt for prose.
type Regex struct {
	splitter *regexp.Regexp
}

// NewRegex creates a terminator-based sentence splitter.
func NewRegex() *Regex {
	return &Regex{splitter: regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)}
}

// Segment returns the sentences of text in document order. Text after the
// last terminator becomes a final sentence.
func (r *Regex) Segment(text string) ([]string, error) {
	locs := r.splitter.FindAllStringIndex(text, -1)
	var out []string
	end := 0
	for _, loc := range locs {
		if s := strings.TrimSpace(text[loc[0]:loc[1]]); hasWord(s) {
			out = append(out, s)
		}
		end = loc[1]
	}
	if tail := strings.TrimSpace(text[end:]); tail != "" && hasWord(tail) {
		out = append(out, tail)
	}
	return out, nil
}

func hasWord(s string) bool {
	return strings.IndexFunc(s, isWordRune) >= 0
}
