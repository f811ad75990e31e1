// Package config loads LearnFlow settings from TOML with environment overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/abhisek/learnflow/internal/llm"
)

//go:embed sample_config.toml
var sampleConfig string

const envPrefix = "LEARNFLOW_"

// Learning holds the tunables of a learning session.
type Learning struct {
	QuizQuestions    int `toml:"quiz_questions"`
	SelectedVideos   int `toml:"selected_videos"`
	MaxSearchResults int `toml:"max_search_results"`
	MinViewSeconds   int `toml:"min_view_seconds"`
}

// YouTube configures the video search collaborator.
type YouTube struct {
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	VideoDuration   string `toml:"video_duration"`
	VideoDefinition string `toml:"video_definition"`
}

// LLM configures the text generation collaborator.
type LLM struct {
	Provider       string  `toml:"provider"`
	APIKey         string  `toml:"api_key"`
	Model          string  `toml:"model"`
	BaseURL        string  `toml:"base_url"`
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RetryAttempts  int     `toml:"retry_attempts"`
}

// Storage configures the local database.
type Storage struct {
	DBPath string `toml:"db_path"`
}

// Logging configures log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config is the complete application configuration.
type Config struct {
	Learning Learning `toml:"learning"`
	YouTube  YouTube  `toml:"youtube"`
	LLM      LLM      `toml:"llm"`
	Storage  Storage  `toml:"storage"`
	Logging  Logging  `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Learning: Learning{
			QuizQuestions:    5,
			SelectedVideos:   5,
			MaxSearchResults: 20,
			MinViewSeconds:   25,
		},
		YouTube: YouTube{
			VideoDuration:   "medium",
			VideoDefinition: "high",
		},
		LLM: LLM{
			Temperature:    0.7,
			MaxTokens:      1024,
			TimeoutSeconds: 30,
			RetryAttempts:  3,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

// Load reads the config file at path (or the default location when path is
// empty), applies environment overrides and validates the result. The
// returned bool reports whether a file was found.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolvePath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		f, err := os.Open(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := loadDotenv(resolved); err != nil {
		return nil, "", false, err
	}
	cfg.applyEnv(os.LookupEnv)
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

// Validate rejects settings no session could run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Learning.QuizQuestions < 1 {
		errs = append(errs, errors.New("learning.quiz_questions must be at least 1"))
	}
	if c.Learning.SelectedVideos < 1 {
		errs = append(errs, errors.New("learning.selected_videos must be at least 1"))
	}
	if c.Learning.MaxSearchResults < c.Learning.SelectedVideos {
		errs = append(errs, errors.New("learning.max_search_results must be >= learning.selected_videos"))
	}
	if c.Learning.MaxSearchResults > 50 {
		errs = append(errs, errors.New("learning.max_search_results cannot exceed 50"))
	}
	if c.Learning.MinViewSeconds < 0 {
		errs = append(errs, errors.New("learning.min_view_seconds cannot be negative"))
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, errors.New("llm.temperature must be between 0 and 2"))
	}
	switch c.LLM.Provider {
	case "", "groq", "openai", "anthropic", "gemini", "mock":
	default:
		errs = append(errs, fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider))
	}
	return errors.Join(errs...)
}

// LLMConfig translates the [llm] section into provider configuration. When
// no provider is configured it falls back to API key discovery; ok is false
// when no provider could be resolved.
func (c *Config) LLMConfig() (llm.Config, bool) {
	var out llm.Config
	if c.LLM.Provider == "" {
		discovered, found := llm.DiscoverConfig()
		if !found {
			return llm.Config{}, false
		}
		out = discovered
	} else {
		out = llm.DefaultConfig()
		out.Provider = c.LLM.Provider
		out.SetAPIKey(c.LLM.APIKey)
	}

	if c.LLM.Model != "" {
		out.SetModel(c.LLM.Model)
	}
	if c.LLM.BaseURL != "" {
		out.SetBaseURL(c.LLM.BaseURL)
	}
	if c.LLM.RetryAttempts > 0 {
		out.Retry.MaxAttempts = c.LLM.RetryAttempts
	}
	if c.LLM.TimeoutSeconds > 0 {
		out.Timeout = time.Duration(c.LLM.TimeoutSeconds) * time.Second
	}
	out.Temperature = c.LLM.Temperature
	out.MaxTokens = c.LLM.MaxTokens
	return out, true
}

// Redacted returns a copy with API keys masked, for display.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "[REDACTED]"
	}
	c.YouTube.APIKey = mask(c.YouTube.APIKey)
	c.LLM.APIKey = mask(c.LLM.APIKey)
	return c
}

// Sample returns the embedded sample configuration.
func Sample() string {
	return sampleConfig
}

// CreateSample writes the sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/learnflow/config.toml.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "learnflow", "config.toml"), nil
}

func resolvePath(path string) (string, bool, error) {
	if path == "" {
		if p := os.Getenv(envPrefix + "CONFIG"); p != "" {
			path = p
		}
	}
	if path == "" {
		def, err := DefaultPath()
		if err != nil {
			return "", false, err
		}
		path = def
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", path)
	}
	return path, true, nil
}

// loadDotenv exports KEY=VALUE pairs from a .env file next to the config
// file. Variables already present in the environment are kept.
func loadDotenv(configPath string) error {
	path := filepath.Join(filepath.Dir(configPath), ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(name string, dst *int) {
		if v, ok := lookup(envPrefix + name); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*dst = n
			}
		}
	}

	str("YOUTUBE_API_KEY", &c.YouTube.APIKey)
	str("YOUTUBE_BASE_URL", &c.YouTube.BaseURL)
	str("LLM_PROVIDER", &c.LLM.Provider)
	str("LLM_API_KEY", &c.LLM.APIKey)
	str("LLM_MODEL", &c.LLM.Model)
	str("LLM_BASE_URL", &c.LLM.BaseURL)
	str("DB", &c.Storage.DBPath)
	str("LOG_LEVEL", &c.Logging.Level)
	str("LOG_FORMAT", &c.Logging.Format)
	num("QUIZ_QUESTIONS", &c.Learning.QuizQuestions)
	num("MIN_VIEW_SECONDS", &c.Learning.MinViewSeconds)

	// The unprefixed key is what most YouTube tooling documents.
	if c.YouTube.APIKey == "" {
		if v, ok := lookup("YOUTUBE_API_KEY"); ok {
			c.YouTube.APIKey = strings.TrimSpace(v)
		}
	}
}

func (c *Config) normalize() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	c.YouTube.VideoDuration = strings.ToLower(strings.TrimSpace(c.YouTube.VideoDuration))
	c.YouTube.VideoDefinition = strings.ToLower(strings.TrimSpace(c.YouTube.VideoDefinition))
	if c.YouTube.APIKey == "your_youtube_api_key" {
		c.YouTube.APIKey = ""
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = 1024
	}
}
