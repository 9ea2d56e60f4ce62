package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"docdigest/internal/answer"
	"docdigest/internal/config"
	"docdigest/internal/domain"
	"docdigest/internal/entity"
	"docdigest/internal/extract"
	"docdigest/internal/lexicon"
	"docdigest/internal/logging"
	"docdigest/internal/normalize"
	"docdigest/internal/retrieval"
	"docdigest/internal/search"
	"docdigest/internal/segment"
	"docdigest/internal/service"
	"docdigest/internal/summarizer"
	"docdigest/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath   string
		asJSON    bool
		question  string
		sentences int
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docdigest/config.yaml if not provided)")
	flag.BoolVar(&asJSON, "json", false, "Print the analysis as JSON and exit")
	flag.StringVar(&question, "ask", "", "Answer a single question about the documents and exit")
	flag.IntVar(&sentences, "sentences", -1, "Number of summary sentences (overrides config)")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: docdigest [--config=config.yaml] [--json] [--ask=question] [--sentences=N] file.pdf [file.docx file.txt ...]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		log.Fatalf("invalid environment: %v", err)
	}
	if sentences >= 0 {
		cfg.Summarizer.MaxSentences = sentences
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	svc, err := buildService(cfg, logger)
	if err != nil {
		logger.Error("assembling components", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := svc.Analyze(ctx, inputs)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	switch {
	case question != "":
		a, err := svc.Ask(ctx, report, question)
		if err != nil {
			logger.Error("answering failed", "error", err)
			os.Exit(1)
		}
		if asJSON {
			writeJSON(a)
			return
		}
		fmt.Println(a.Text)
	case asJSON:
		writeJSON(report)
	default:
		m := tui.New(ctx, svc, report)
		if _, err := tea.NewProgram(m).Run(); err != nil {
			logger.Error("tui exited", "error", err)
			os.Exit(1)
		}
	}
}

// buildService assembles components via interfaces according to cfg.
func buildService(cfg *config.AppConfig, logger *slog.Logger) (*service.AnalysisService, error) {
	stop, err := lexicon.ForLanguage(cfg.Lexicon.Language)
	if err != nil {
		return nil, err
	}
	if cfg.Lexicon.StopwordsFile != "" {
		if stop, err = lexicon.Load(cfg.Lexicon.StopwordsFile); err != nil {
			return nil, fmt.Errorf("loading stop words: %w", err)
		}
	}
	stop = stop.With(cfg.Lexicon.Extra...)
	norm := normalize.New(stop)

	var seg domain.Segmenter
	switch cfg.Segmenter.Type {
	case "punkt", "":
		if seg, err = segment.NewPunkt(); err != nil {
			return nil, err
		}
	case "regex":
		seg = segment.NewRegex()
	default:
		return nil, fmt.Errorf("unknown segmenter: %s", cfg.Segmenter.Type)
	}
	words := segment.NewWords()

	var ranker service.Ranker
	switch cfg.Summarizer.Type {
	case "frequency", "":
		ranker = summarizer.NewFrequencySummarizer(seg, words, norm,
			summarizer.WithMergeDuplicates(cfg.MergeDuplicates()))
	default:
		return nil, fmt.Errorf("unknown summarizer: %s", cfg.Summarizer.Type)
	}

	registry := extract.NewRegistry(cfg.Extract.AllowedExtensions)
	registry.Register("pdf", &extract.PDF{Logger: logger})

	var rec entity.Recognizer
	if cfg.Entities.Enabled {
		rec = entity.NewHeuristic(stop)
	}

	retriever, err := retrieval.NewRetriever(retrieval.NewAnalyzer(norm), cfg.Answer.Retrieval)
	if err != nil {
		return nil, err
	}
	var searcher search.Searcher = search.Disabled{}
	if cfg.Search.Enabled {
		searcher = search.NewHTMLSearcher(search.Config{
			URL:             cfg.Search.URL,
			UserAgent:       cfg.Search.UserAgent,
			Timeout:         time.Duration(cfg.Search.TimeoutSecs) * time.Second,
			ResultSelector:  cfg.Search.ResultSelector,
			TitleSelector:   cfg.Search.TitleSelector,
			LinkSelector:    cfg.Search.LinkSelector,
			SnippetSelector: cfg.Search.SnippetSelector,
		}, logger)
	}
	composer := answer.NewComposer(retriever, searcher, cfg.Answer.ContextSentences, cfg.Search.MaxResults, logger)

	return service.NewAnalysisService(registry, seg, words, ranker, rec, composer, cfg.Summarizer.MaxSentences, logger), nil
}

func writeJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("encoding output", "error", err)
		os.Exit(1)
	}
}
