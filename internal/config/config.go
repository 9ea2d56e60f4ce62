package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SegmenterConfig selects the sentence segmenter.
type SegmenterConfig struct {
	Type string `yaml:"type"`
}

// LexiconConfig selects the stop-word list.
type LexiconConfig struct {
	Language      string   `yaml:"language"`
	StopwordsFile string   `yaml:"stopwords_file,omitempty"`
	Extra         []string `yaml:"extra,omitempty"`
}

// SummarizerConfig selects and configures the summarizer.
type SummarizerConfig struct {
	Type            string `yaml:"type"`
	MaxSentences    int    `yaml:"max_sentences"`
	MergeDuplicates *bool  `yaml:"merge_duplicates,omitempty"`
}

// ExtractConfig restricts the accepted document formats.
type ExtractConfig struct {
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

// EntitiesConfig toggles the named-entity listing.
type EntitiesConfig struct {
	Enabled bool `yaml:"enabled"`
}

// SearchConfig configures the web search used to answer questions.
type SearchConfig struct {
	Enabled         bool   `yaml:"enabled"`
	URL             string `yaml:"url"`
	UserAgent       string `yaml:"user_agent"`
	TimeoutSecs     int    `yaml:"timeout_secs"`
	MaxResults      int    `yaml:"max_results"`
	ResultSelector  string `yaml:"result_selector,omitempty"`
	TitleSelector   string `yaml:"title_selector,omitempty"`
	LinkSelector    string `yaml:"link_selector,omitempty"`
	SnippetSelector string `yaml:"snippet_selector,omitempty"`
}

// AnswerConfig configures question answering.
type AnswerConfig struct {
	Retrieval        string `yaml:"retrieval"`
	ContextSentences int    `yaml:"context_sentences"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Segmenter  SegmenterConfig  `yaml:"segmenter"`
	Lexicon    LexiconConfig    `yaml:"lexicon"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Extract    ExtractConfig    `yaml:"extract"`
	Entities   EntitiesConfig   `yaml:"entities"`
	Search     SearchConfig     `yaml:"search"`
	Answer     AnswerConfig     `yaml:"answer"`
	Log        LogConfig        `yaml:"log"`
}

// MergeDuplicates reports whether identical sentences collapse into one
// summary candidate. Defaults to true.
func (c *AppConfig) MergeDuplicates() bool {
	return c.Summarizer.MergeDuplicates == nil || *c.Summarizer.MergeDuplicates
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	applyConfigDefaults(cfg)
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/docdigest/config.yaml.
// If neither exists, it writes defaults to ~/.config/docdigest/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv overrides config values from DOCDIGEST_* environment variables.
func (c *AppConfig) ApplyEnv(getenv func(string) string) error {
	if v := getenv("DOCDIGEST_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("DOCDIGEST_SEARCH_URL"); v != "" {
		c.Search.URL = v
	}
	if v := getenv("DOCDIGEST_SEARCH_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DOCDIGEST_SEARCH_ENABLED: %w", err)
		}
		c.Search.Enabled = b
	}
	if v := getenv("DOCDIGEST_MAX_SENTENCES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DOCDIGEST_MAX_SENTENCES: %w", err)
		}
		c.Summarizer.MaxSentences = n
	}
	return nil
}

// Validate checks values the loaders cannot default.
func (c *AppConfig) Validate() error {
	if c.Summarizer.MaxSentences < 0 {
		return fmt.Errorf("summarizer.max_sentences must not be negative: %d", c.Summarizer.MaxSentences)
	}
	if c.Search.Enabled && !strings.Contains(c.Search.URL, "{query}") {
		return fmt.Errorf("search.url must contain {query}: %q", c.Search.URL)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format: %s", c.Log.Format)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docdigest", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Segmenter:  SegmenterConfig{Type: "punkt"},
		Lexicon:    LexiconConfig{Language: "english"},
		Summarizer: SummarizerConfig{Type: "frequency", MaxSentences: 3},
		Extract:    ExtractConfig{AllowedExtensions: []string{"pdf", "docx", "txt"}},
		Entities:   EntitiesConfig{Enabled: true},
		Search: SearchConfig{
			Enabled:     true,
			URL:         "https://html.duckduckgo.com/html/?q={query}",
			UserAgent:   "docdigest/1.0",
			TimeoutSecs: 15,
			MaxResults:  3,
		},
		Answer: AnswerConfig{Retrieval: "tfidf", ContextSentences: 3},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Segmenter.Type == "" {
		cfg.Segmenter.Type = def.Segmenter.Type
	}
	if cfg.Lexicon.Language == "" {
		cfg.Lexicon.Language = def.Lexicon.Language
	}
	if cfg.Summarizer.Type == "" {
		cfg.Summarizer.Type = def.Summarizer.Type
	}
	if len(cfg.Extract.AllowedExtensions) == 0 {
		cfg.Extract.AllowedExtensions = def.Extract.AllowedExtensions
	}
	if cfg.Search.TimeoutSecs == 0 {
		cfg.Search.TimeoutSecs = def.Search.TimeoutSecs
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = def.Search.MaxResults
	}
	if cfg.Answer.Retrieval == "" {
		cfg.Answer.Retrieval = def.Answer.Retrieval
	}
	if cfg.Answer.ContextSentences == 0 {
		cfg.Answer.ContextSentences = def.Answer.ContextSentences
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}
