package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abhisek/learnflow/internal/app"
	"github.com/abhisek/learnflow/internal/config"
	"github.com/abhisek/learnflow/internal/llm"
	"github.com/abhisek/learnflow/internal/logging"
	"github.com/abhisek/learnflow/internal/session"
	"github.com/abhisek/learnflow/internal/store"
	"github.com/abhisek/learnflow/internal/youtube"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	if !isTerminal(os.Stdout) {
		return errors.New("learnflow needs an interactive terminal; see `learnflow --help` for scriptable commands")
	}

	ephemeral, _ := cmd.Flags().GetBool("ephemeral")
	e, err := openEnv(cmd, envOptions{logToFile: true, exclusive: !ephemeral, ephemeral: ephemeral})
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := ctxOf(cmd)
	orch := session.New(session.Deps{
		KV:       e.kv,
		Searcher: buildSearcher(ctx, e.cfg, e.log),
		Provider: buildProvider(ctx, e.cfg, e.events(), e.log),
		Config:   sessionConfig(e.cfg),
		Log:      e.log,
	})
	e.log.Info("starting", "version", resolvedVersion(), "db", e.dbPath, "ephemeral", ephemeral)
	return app.Run(orch)
}

func sessionConfig(cfg *config.Config) session.Config {
	return session.Config{
		QuestionCount:    cfg.Learning.QuizQuestions,
		SelectedVideos:   cfg.Learning.SelectedVideos,
		MaxSearchResults: cfg.Learning.MaxSearchResults,
		MinViewTime:      time.Duration(cfg.Learning.MinViewSeconds) * time.Second,
		Temperature:      cfg.LLM.Temperature,
		MaxTokens:        cfg.LLM.MaxTokens,
	}
}

// buildSearcher returns nil when no YouTube API key is configured; the
// orchestrator reports that to the learner.
func buildSearcher(ctx context.Context, cfg *config.Config, log *logging.Logger) youtube.Searcher {
	client, err := youtube.NewClient(ctx, youtube.Options{
		APIKey:          cfg.YouTube.APIKey,
		Endpoint:        cfg.YouTube.BaseURL,
		VideoDuration:   cfg.YouTube.VideoDuration,
		VideoDefinition: cfg.YouTube.VideoDefinition,
	}, log)
	if err != nil {
		if errors.Is(err, youtube.ErrNoAPIKey) {
			fmt.Fprintln(os.Stderr, "YouTube API key not configured; video search is unavailable.")
		} else {
			fmt.Fprintln(os.Stderr, "YouTube client not available:", err)
		}
		log.Warn("video search disabled", "error", err)
		return nil
	}
	return client
}

// buildProvider returns nil when no LLM is configured. Every LLM step has
// a deterministic fallback, so the app stays usable.
func buildProvider(ctx context.Context, cfg *config.Config, events store.EventRepo, log *logging.Logger) llm.Provider {
	llmCfg, ok := cfg.LLMConfig()
	if !ok {
		fmt.Fprintln(os.Stderr, "LLM provider not configured; using built-in fallbacks.")
		log.Warn("llm disabled: no provider configured")
		return nil
	}
	provider, err := llm.NewProvider(ctx, llmCfg, events, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not available:", err)
		fmt.Fprintln(os.Stderr, "Using built-in fallbacks.")
		log.Warn("llm disabled", "error", err)
		return nil
	}
	return provider
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
