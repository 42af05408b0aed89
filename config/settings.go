// Package config provides configuration structures for the recipe search engine.
// Configuration is read from a YAML file, then overridden by environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvCorpus    = "RECIPE_SEARCH_CORPUS"
	EnvDataDir   = "RECIPE_SEARCH_DATA_DIR"
	EnvPort      = "RECIPE_SEARCH_PORT"
	EnvLogLevel  = "RECIPE_SEARCH_LOG_LEVEL"
	EnvLogFormat = "RECIPE_SEARCH_LOG_FORMAT"
	EnvWatch     = "RECIPE_SEARCH_WATCH"
)

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            string `yaml:"port" json:"port"`
	MaxRequestBytes int64  `yaml:"max_request_bytes" json:"max_request_bytes"`
}

// CorpusConfig locates the recipe corpus.
// With Watch set, the index is rebuilt whenever the corpus file changes.
type CorpusConfig struct {
	Path          string        `yaml:"path" json:"path"`
	Watch         bool          `yaml:"watch" json:"watch"`
	WatchDebounce time.Duration `yaml:"watch_debounce" json:"watch_debounce"`
}

// IndexConfig controls the on-disk index cache.
// DisableCache always rebuilds the index and never writes the cache file.
type IndexConfig struct {
	DataDir      string `yaml:"data_dir" json:"data_dir"`
	CacheFile    string `yaml:"cache_file" json:"cache_file"`
	DisableCache bool   `yaml:"disable_cache" json:"disable_cache"`
}

// SearchConfig tunes query handling.
// ResultLimit is the top-N cutoff shared by every strategy, MaxServingMultiplier
// bounds the healthy serving search, and an empty StopWordsFile selects the
// built-in English list.
type SearchConfig struct {
	ResultLimit          int    `yaml:"result_limit" json:"result_limit"`
	MaxServingMultiplier int    `yaml:"max_serving_multiplier" json:"max_serving_multiplier"`
	QueryCacheSize       int    `yaml:"query_cache_size" json:"query_cache_size"`
	StopWordsFile        string `yaml:"stop_words_file" json:"stop_words_file"`
}

// LoggingConfig configures slog.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // text or json
}

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	Corpus  CorpusConfig  `yaml:"corpus" json:"corpus"`
	Index   IndexConfig   `yaml:"index" json:"index"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// Load reads the YAML file at path, applies environment overrides and defaults.
// A missing file is not an error. A .env file in the working directory is
// loaded into the environment first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path is provided by the operator
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables.
func (cfg *Config) ApplyEnv() error {
	if v := os.Getenv(EnvCorpus); v != "" {
		cfg.Corpus.Path = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.Index.DataDir = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvWatch); v != "" {
		watch, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvWatch, v, err)
		}
		cfg.Corpus.Watch = watch
	}
	return nil
}

// ApplyDefaults fills every unset field with its default value.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.MaxRequestBytes == 0 {
		cfg.Server.MaxRequestBytes = 1 << 20
	}
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "recipes.json"
	}
	if cfg.Corpus.WatchDebounce == 0 {
		cfg.Corpus.WatchDebounce = 500 * time.Millisecond
	}
	if cfg.Index.DataDir == "" {
		cfg.Index.DataDir = "./search_data"
	}
	if cfg.Index.CacheFile == "" {
		cfg.Index.CacheFile = "inverted_index.gob"
	}
	if cfg.Search.ResultLimit == 0 {
		cfg.Search.ResultLimit = 10
	}
	if cfg.Search.MaxServingMultiplier == 0 {
		cfg.Search.MaxServingMultiplier = 99
	}
	if cfg.Search.QueryCacheSize == 0 {
		cfg.Search.QueryCacheSize = 1024
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// Validate returns a list of configuration problems; an empty list means valid.
func (cfg *Config) Validate() []string {
	var problems []string

	if strings.TrimSpace(cfg.Corpus.Path) == "" {
		problems = append(problems, "corpus.path cannot be empty")
	}
	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port <= 0 || port > 65535 {
		problems = append(problems, "server.port must be a number between 1 and 65535, got '"+cfg.Server.Port+"'")
	}
	if cfg.Server.MaxRequestBytes < 0 {
		problems = append(problems, "server.max_request_bytes cannot be negative")
	}
	if cfg.Search.ResultLimit < 0 {
		problems = append(problems, "search.result_limit cannot be negative")
	}
	if cfg.Search.MaxServingMultiplier < 0 {
		problems = append(problems, "search.max_serving_multiplier cannot be negative")
	}
	if cfg.Search.QueryCacheSize < 0 {
		problems = append(problems, "search.query_cache_size cannot be negative")
	}
	if cfg.Corpus.WatchDebounce < 0 {
		problems = append(problems, "corpus.watch_debounce cannot be negative")
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, "invalid logging.level '"+cfg.Logging.Level+"' (must be 'debug', 'info', 'warn' or 'error')")
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		problems = append(problems, "invalid logging.format '"+cfg.Logging.Format+"' (must be 'text' or 'json')")
	}

	return problems
}

// IndexCachePath is the full path of the index cache file.
func (cfg *Config) IndexCachePath() string {
	return filepath.Join(cfg.Index.DataDir, cfg.Index.CacheFile)
}
