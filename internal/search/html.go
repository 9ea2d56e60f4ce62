package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Config configures an HTMLSearcher. URL must contain the {query}
// placeholder; selectors are CSS selectors relative to each result node.
type Config struct {
	URL             string
	UserAgent       string
	Timeout         time.Duration
	ResultSelector  string
	TitleSelector   string
	LinkSelector    string
	SnippetSelector string
}

// DefaultConfig targets the DuckDuckGo HTML endpoint.
func DefaultConfig() Config {
	return Config{
		URL:             "https://html.duckduckgo.com/html/?q={query}",
		UserAgent:       "docdigest/1.0",
		Timeout:         15 * time.Second,
		ResultSelector:  ".result",
		TitleSelector:   ".result__a",
		LinkSelector:    ".result__a",
		SnippetSelector: ".result__snippet",
	}
}

// HTMLSearcher reads results from a search engine's HTML results page.
type HTMLSearcher struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// NewHTMLSearcher fills unset fields from DefaultConfig.
func NewHTMLSearcher(cfg Config, logger *slog.Logger) *HTMLSearcher {
	def := DefaultConfig()
	if cfg.URL == "" {
		cfg.URL = def.URL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.ResultSelector == "" {
		cfg.ResultSelector = def.ResultSelector
	}
	if cfg.TitleSelector == "" {
		cfg.TitleSelector = def.TitleSelector
	}
	if cfg.LinkSelector == "" {
		cfg.LinkSelector = def.LinkSelector
	}
	if cfg.SnippetSelector == "" {
		cfg.SnippetSelector = def.SnippetSelector
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTMLSearcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

func (s *HTMLSearcher) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}
	pageURL := strings.ReplaceAll(s.cfg.URL, "{query}", url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading results page: %w", err)
	}
	base, _ := url.Parse(pageURL)

	var results []Result
	doc.Find(s.cfg.ResultSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Find(s.cfg.LinkSelector).First().Attr("href")
		link := resolveLink(base, href)
		if link == "" {
			return true
		}
		results = append(results, Result{
			Title:   collapse(sel.Find(s.cfg.TitleSelector).First().Text()),
			Link:    link,
			Snippet: collapse(sel.Find(s.cfg.SnippetSelector).First().Text()),
		})
		return len(results) < limit
	})

	s.logger.Debug("web search finished", "query", query, "results", len(results), "duration", time.Since(start).Round(time.Millisecond))
	return results, nil
}

// resolveLink makes href absolute and unwraps redirect links that carry the
// target in a uddg parameter.
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if target := u.Query().Get("uddg"); target != "" {
		if t, err := url.Parse(target); err == nil && t.IsAbs() {
			return t.String()
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
