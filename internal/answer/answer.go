// Package answer composes free-text answers from document context and web
// search results.
package answer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"docdigest/internal/domain"
	"docdigest/internal/retrieval"
	"docdigest/internal/search"
)

// ErrEmptyQuestion is returned for blank questions.
var ErrEmptyQuestion = errors.New("answer: empty question")

// NoInformation is the answer text when neither source had anything relevant.
const NoInformation = "No relevant information was found in the documents or on the web."

// Answer is the result of a question.
type Answer struct {
	Question string          `json:"question"`
	Text     string          `json:"text"`
	Context  []string        `json:"context"`
	Sources  []search.Result `json:"sources"`
}

// Composer blends the document sentences closest to a question with web
// search snippets.
type Composer struct {
	retriever        *retrieval.Retriever
	searcher         search.Searcher
	contextSentences int
	webResults       int
	logger           *slog.Logger
}

// NewComposer creates a composer. Non-positive limits default to 3.
func NewComposer(r *retrieval.Retriever, s search.Searcher, contextSentences, webResults int, logger *slog.Logger) *Composer {
	if contextSentences <= 0 {
		contextSentences = 3
	}
	if webResults <= 0 {
		webResults = 3
	}
	if s == nil {
		s = search.Disabled{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{
		retriever:        r,
		searcher:         s,
		contextSentences: contextSentences,
		webResults:       webResults,
		logger:           logger,
	}
}

// Answer answers question from sentences and the web. A failing web search
// is logged and the answer falls back to the documents alone.
func (c *Composer) Answer(ctx context.Context, question string, sentences []domain.Sentence) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	hits, err := c.retriever.Retrieve(question, sentences, c.contextSentences)
	if err != nil {
		return nil, fmt.Errorf("retrieving document context: %w", err)
	}
	docContext := make([]string, len(hits))
	for i, h := range hits {
		docContext[i] = h.Sentence.Text
	}

	results, err := c.searcher.Search(ctx, question, c.webResults)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn("web search failed, answering from documents only", "error", err)
		results = nil
	}

	c.logger.Debug("answer composed", "question", question, "context", len(docContext), "web_results", len(results))
	return &Answer{
		Question: question,
		Text:     compose(docContext, results),
		Context:  docContext,
		Sources:  results,
	}, nil
}

func compose(docContext []string, results []search.Result) string {
	var snippets []string
	for _, r := range results {
		if r.Snippet != "" {
			snippets = append(snippets, r.Snippet)
		}
	}
	if len(docContext) == 0 && len(results) == 0 {
		return NoInformation
	}

	var parts []string
	if len(docContext) > 0 {
		parts = append(parts, "From your documents: "+strings.Join(docContext, " "))
	}
	if len(snippets) > 0 {
		parts = append(parts, "From the web: "+strings.Join(snippets, " "))
	}
	if len(results) > 0 {
		var b strings.Builder
		b.WriteString("Sources:")
		for i, r := range results {
			title := r.Title
			if title == "" {
				title = r.Link
			}
			fmt.Fprintf(&b, "\n%d. %s - %s", i+1, title, r.Link)
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n\n")
}
