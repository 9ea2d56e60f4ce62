// Package search queries a web search engine for question context.
package search

import (
	"context"
	"errors"
)

// ErrStatus is returned when the search endpoint answers with a non-2xx status.
var ErrStatus = errors.New("search: unexpected response status")

// Result is one web search hit. Fields the page did not provide are empty.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Searcher returns at most limit results for query, best first.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// Disabled is a Searcher that never returns results.
type Disabled struct{}

func (Disabled) Search(context.Context, string, int) ([]Result, error) { return nil, nil }
