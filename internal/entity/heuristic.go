package entity

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"docdigest/internal/lexicon"
)

var (
	honorifics = toSet("mr", "mrs", "ms", "miss", "dr", "prof", "professor", "sir", "dame",
		"lord", "lady", "president", "senator", "minister", "judge", "rev")
	orgWords = toSet("inc", "corp", "corporation", "ltd", "llc", "plc", "co", "company",
		"university", "institute", "college", "school", "academy", "association", "agency",
		"foundation", "group", "bank", "ministry", "department", "council", "committee",
		"society", "laboratory", "laboratories", "labs", "organization", "organisation",
		"press", "journal", "hospital", "museum", "party", "union", "commission")
	placeWords = toSet("city", "county", "river", "mountain", "mountains", "mount", "lake",
		"island", "islands", "ocean", "sea", "street", "avenue", "valley", "province",
		"state", "states", "republic", "kingdom", "coast", "bay", "desert", "peninsula", "region")
	placePrepositions = toSet("in", "at", "from", "near", "across", "throughout", "outside", "inside")
	connectors        = toSet("of", "and", "de", "for", "&")
)

// Heuristic tags capitalised token spans using honorifics, organization
// and place cue words and the preceding preposition. It needs no model and
// is meant as a coarse default.
type Heuristic struct {
	stopwords lexicon.Set
}

// NewHeuristic returns a recognizer that never starts a span on a stop word.
func NewHeuristic(stopwords lexicon.Set) *Heuristic {
	return &Heuristic{stopwords: stopwords}
}

func (h *Heuristic) Recognize(sentences [][]string) ([]Chunk, error) {
	var out []Chunk
	for _, toks := range sentences {
		out = append(out, h.sentence(toks)...)
	}
	return out, nil
}

func (h *Heuristic) sentence(toks []string) []Chunk {
	var (
		out      []Chunk
		span     []string
		lastWord string
		before   string
	)
	flush := func() {
		for len(span) > 0 && connectors[strings.ToLower(span[len(span)-1])] {
			span = span[:len(span)-1]
		}
		if len(span) > 0 {
			out = append(out, Chunk{Text: strings.Join(span, " "), Tag: classify(span, before)})
		}
		span = nil
	}

	for i, tok := range toks {
		lower := strings.ToLower(tok)
		switch {
		case !isWord(tok):
			if tok == "." && len(span) == 0 {
				continue
			}
			flush()
			lastWord = ""
		case honorifics[lower] && len(span) == 0 && isCapitalized(tok):
			lastWord = lower
		case len(span) > 0 && connectors[lower] && i+1 < len(toks) && isCapitalized(toks[i+1]):
			span = append(span, tok)
		case isCapitalized(tok) && !h.stopwords.Contains(lower):
			if len(span) == 0 {
				before = lastWord
			}
			span = append(span, tok)
		default:
			flush()
			lastWord = lower
		}
	}
	flush()
	return out
}

func classify(span []string, before string) string {
	first := strings.ToLower(span[0])
	last := strings.ToLower(span[len(span)-1])
	switch {
	case honorifics[before]:
		return "PERSON"
	case orgWords[last] || orgWords[first] || (len(span) == 1 && isAcronym(span[0])):
		return "ORGANIZATION"
	case placeWords[last] || placeWords[first] || placePrepositions[before]:
		return "GPE"
	case len(span) >= 2 && len(span) <= 3 && allTitleCase(span):
		return "PERSON"
	default:
		return "O"
	}
}

func isWord(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsLetter(r) || unicode.IsDigit(r) || tok == "&"
}

func isCapitalized(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsUpper(r)
}

func isAcronym(tok string) bool {
	if utf8.RuneCountInString(tok) < 2 {
		return false
	}
	for _, r := range tok {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func allTitleCase(span []string) bool {
	for _, tok := range span {
		if !isCapitalized(tok) || isAcronym(tok) {
			return false
		}
	}
	return true
}

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
