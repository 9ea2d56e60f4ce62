// Package lexicon provides the stop-word sets used by the text normalizer.
package lexicon

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ErrUnsupportedLanguage is returned when no built-in list exists for a language.
var ErrUnsupportedLanguage = errors.New("lexicon: unsupported language")

//go:embed english.txt
var englishList string

var (
	englishOnce sync.Once
	englishSet  Set
)

// Set is an immutable set of lower-cased stop words. The zero value is an
// empty set and is safe for concurrent use.
type Set struct {
	words map[string]struct{}
}

// New builds a set from the given words.
func New(words ...string) Set {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		m[w] = struct{}{}
	}
	return Set{words: m}
}

// English returns the built-in English stop-word list. It is parsed once
// and shared read-only afterwards.
func English() Set {
	englishOnce.Do(func() {
		words, _ := readList(strings.NewReader(englishList))
		englishSet = New(words...)
	})
	return englishSet
}

// ForLanguage resolves a configured language name to its built-in list.
func ForLanguage(name string) (Set, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "english", "en", "":
		return English(), nil
	default:
		return Set{}, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, name)
	}
}

// Load reads a newline-separated stop-word list. Blank lines and lines
// starting with '#' are ignored.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("opening stop-word list: %w", err)
	}
	defer f.Close()
	words, err := readList(f)
	if err != nil {
		return Set{}, fmt.Errorf("reading stop-word list %s: %w", path, err)
	}
	return New(words...), nil
}

// Contains reports whether token is a stop word. Lookup is case-insensitive.
func (s Set) Contains(token string) bool {
	if len(s.words) == 0 {
		return false
	}
	_, ok := s.words[strings.ToLower(token)]
	return ok
}

// With returns a new set holding the receiver's words plus extra.
func (s Set) With(extra ...string) Set {
	words := make([]string, 0, len(s.words)+len(extra))
	for w := range s.words {
		words = append(words, w)
	}
	return New(append(words, extra...)...)
}

// Len returns the number of words in the set.
func (s Set) Len() int { return len(s.words) }

func readList(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, sc.Err()
}
