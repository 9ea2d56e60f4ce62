package summarizer

import (
	"strconv"
	"strings"
)

const header = "Key points:\n\n"

// Format renders the selected sentences as a numbered list under a
// "Key points:" header, one sentence per line. Whitespace runs inside a
// sentence, line breaks included, are rendered as a single space.
func Format(selected []ScoredSentence) string {
	var b strings.Builder
	b.WriteString(header)
	for i, s := range selected {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(strings.Join(strings.Fields(s.Text), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
