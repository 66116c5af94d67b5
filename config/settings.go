// Package config provides the settings of a termindex server.
// Settings come from an optional YAML file, then environment overrides, then defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvPort           = "TERMINDEX_PORT"
	EnvLogLevel       = "TERMINDEX_LOG_LEVEL"
	EnvMaxSuggestions = "TERMINDEX_MAX_SUGGESTIONS"
	EnvDataDir        = "TERMINDEX_DATA_DIR"
)

// VocabularyFileName is the dump written under DataDir after each build.
const VocabularyFileName = "vocabulary.txt"

// DefaultStopwords are the terms kept off the homepage unless configured otherwise.
var DefaultStopwords = []string{
	"a", "about", "an", "and", "are", "as", "at", "be", "been", "but", "by", "can", "do", "for",
	"from", "has", "have", "he", "here", "how", "i", "if", "in", "into", "is", "it", "its", "let",
	"lets", "not", "of", "on", "one", "or", "should", "so", "than", "that", "the", "then", "there",
	"they", "this", "to", "was", "we", "were", "what", "which", "will", "with", "you",
}

// Settings contains all configuration options for a termindex server.
type Settings struct {
	Server       ServerSettings       `yaml:"server" json:"server"`
	Log          LogSettings          `yaml:"log" json:"log"`
	Autocomplete AutocompleteSettings `yaml:"autocomplete" json:"autocomplete"`
	Index        IndexSettings        `yaml:"index" json:"index"`
	Jobs         JobSettings          `yaml:"jobs" json:"jobs"`
	DataDir      string               `yaml:"data_dir" json:"data_dir"` // Where the vocabulary dump lives; empty disables the dump
}

// ServerSettings holds HTTP server settings.
type ServerSettings struct {
	Port            int      `yaml:"port" json:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec" json:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec" json:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec" json:"shutdown_timeout_sec"`
	MaxBodyBytes    int64    `yaml:"max_body_bytes" json:"max_body_bytes"`
	AllowedOrigins  []string `yaml:"allowed_origins" json:"allowed_origins"`   // Empty allows every origin
	RateLimitRPS    float64  `yaml:"rate_limit_rps" json:"rate_limit_rps"`     // Per client IP; 0 disables limiting
	RateLimitBurst  int      `yaml:"rate_limit_burst" json:"rate_limit_burst"` // Defaults to 1 when limiting
	Gzip            bool     `yaml:"gzip" json:"gzip"`                         // Compress responses
}

// LogSettings holds logging settings.
type LogSettings struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // text, json, logfmt
}

// AutocompleteSettings holds suggestion settings.
type AutocompleteSettings struct {
	MaxSuggestions int  `yaml:"max_suggestions" json:"max_suggestions"`     // 0 means no cap
	SeedFromIndex  bool `yaml:"seed_from_index" json:"seed_from_index"` // Load the vocabulary dump into the trie after each build
}

// IndexSettings holds index build settings.
type IndexSettings struct {
	Workers   int      `yaml:"workers" json:"workers"` // 0 selects GOMAXPROCS
	Stopwords []string `yaml:"stopwords" json:"stopwords"`
}

// JobSettings holds background job settings.
type JobSettings struct {
	Workers int `yaml:"workers" json:"workers"`
}

// Default returns settings with every default applied.
func Default() *Settings {
	s := &Settings{}
	s.ApplyDefaults()
	return s
}

// Load reads settings from a YAML file, applies environment overrides and
// defaults, and validates the result. An empty path skips the file.
func Load(path string) (*Settings, error) {
	s := &Settings{}

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := s.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	s.ApplyDefaults()

	if problems := s.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return s, nil
}

// ApplyEnv overrides settings from the environment.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", EnvPort, v)
		}
		s.Server.Port = port
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		s.Log.Level = v
	}
	if v, ok := lookup(EnvMaxSuggestions); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", EnvMaxSuggestions, v)
		}
		s.Autocomplete.MaxSuggestions = n
	}
	if v, ok := lookup(EnvDataDir); ok {
		s.DataDir = v
	}
	return nil
}

// ApplyDefaults fills empty fields with default values
func (s *Settings) ApplyDefaults() {
	if s.Server.Port == 0 {
		s.Server.Port = 8080
	}
	if s.Server.ReadTimeoutSec <= 0 {
		s.Server.ReadTimeoutSec = 10
	}
	if s.Server.WriteTimeoutSec <= 0 {
		s.Server.WriteTimeoutSec = 30
	}
	if s.Server.ShutdownSec <= 0 {
		s.Server.ShutdownSec = 10
	}
	if s.Server.MaxBodyBytes <= 0 {
		s.Server.MaxBodyBytes = 32 << 20
	}
	if s.Server.RateLimitRPS > 0 && s.Server.RateLimitBurst <= 0 {
		s.Server.RateLimitBurst = 1
	}
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
	if s.Log.Format == "" {
		s.Log.Format = "text"
	}
	if s.Jobs.Workers <= 0 {
		s.Jobs.Workers = 2
	}
	// Initialize empty slices if nil; an explicit empty list disables stopwords
	if s.Index.Stopwords == nil {
		s.Index.Stopwords = append([]string(nil), DefaultStopwords...)
	}
}

// Validate returns every problem found in the settings.
func (s *Settings) Validate() []string {
	var problems []string

	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port must be between 1 and 65535, got %d", s.Server.Port))
	}

	if s.Server.RateLimitRPS < 0 {
		problems = append(problems, "server.rate_limit_rps cannot be negative")
	}
	for _, origin := range s.Server.AllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			problems = append(problems, fmt.Sprintf("server.allowed_origins entry %q must start with http:// or https://", origin))
		}
	}

	switch strings.ToLower(s.Log.Level) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		problems = append(problems, fmt.Sprintf("log.level must be one of debug, info, warn, error, fatal; got %q", s.Log.Level))
	}

	switch strings.ToLower(s.Log.Format) {
	case "text", "json", "logfmt":
	default:
		problems = append(problems, fmt.Sprintf("log.format must be text, json or logfmt; got %q", s.Log.Format))
	}

	if s.Autocomplete.MaxSuggestions < 0 {
		problems = append(problems, "autocomplete.max_suggestions cannot be negative")
	}
	if s.Index.Workers < 0 {
		problems = append(problems, "index.workers cannot be negative")
	}

	seen := make(map[string]bool, len(s.Index.Stopwords))
	for _, word := range s.Index.Stopwords {
		if strings.TrimSpace(word) == "" {
			problems = append(problems, "index.stopwords cannot contain empty words")
			continue
		}
		if seen[word] {
			problems = append(problems, "Duplicate stopword '"+word+"' found in index.stopwords")
		}
		seen[word] = true
	}

	return problems
}

// VocabularyPath returns the vocabulary dump location, or "" when DataDir is unset.
func (s *Settings) VocabularyPath() string {
	if s.DataDir == "" {
		return ""
	}
	return filepath.Join(s.DataDir, VocabularyFileName)
}

// Addr returns the listen address for the HTTP server.
func (s *Settings) Addr() string {
	return ":" + strconv.Itoa(s.Server.Port)
}
