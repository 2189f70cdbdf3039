// Package config provides configuration loading and validation for the CLI
// and server. Values come from an optional JSON file, the environment, and
// flags, in increasing precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds every tunable of the tool. All fields are optional; missing
// values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Resume string `json:"resume,omitempty"`  // Path to resume file (.txt/.pdf/.docx)
	Job    string `json:"job,omitempty"`     // Path to a job record JSON file
	JobURL string `json:"job_url,omitempty"` // URL to fetch a job posting from

	// Services
	APIKey         string `json:"api_key,omitempty"`           // Gemini API key
	JobsAPIBaseURL string `json:"jobs_api_base_url,omitempty"` // Search endpoint override
	StorePath      string `json:"store_path,omitempty"`        // SQLite store location

	// Tuning
	MinKeywordLen int `json:"min_keyword_len,omitempty"` // Minimum keyword token length
	SearchPages   int `json:"search_pages,omitempty"`    // Pages fetched per search
	PerPage       int `json:"per_page,omitempty"`        // Results per page

	// Server
	Port int `json:"port,omitempty"` // REST server listen port

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Environment variable names recognized by FromEnv.
const (
	EnvAPIKey    = "GEMINI_API_KEY"
	EnvStorePath = "GAP_AGENT_STORE"
	EnvJobsAPI   = "GAP_AGENT_JOBS_API"
	EnvPort      = "GAP_AGENT_PORT"
)

// Built-in defaults applied last in the merge chain.
const (
	DefaultStorePath     = "gap_agent_jobs/jobs.db"
	DefaultMinKeywordLen = 3
	DefaultSearchPages   = 1
	DefaultPerPage       = 20
	DefaultPort          = 8080
)

// Load reads configuration from a JSON file. Returns an error if the file
// cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Call after godotenv
// has loaded any .env file.
func FromEnv() Config {
	cfg := Config{
		APIKey:         os.Getenv(EnvAPIKey),
		StorePath:      os.Getenv(EnvStorePath),
		JobsAPIBaseURL: os.Getenv(EnvJobsAPI),
	}
	if port, err := strconv.Atoi(os.Getenv(EnvPort)); err == nil && port > 0 {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values. Required fields
// are not checked here; the CLI enforces those after merging flags.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}
	if c.MinKeywordLen < 0 {
		return fmt.Errorf("config error: 'min_keyword_len' must be non-negative")
	}
	if c.SearchPages < 0 {
		return fmt.Errorf("config error: 'search_pages' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Bool fields are not merged since unset and false are
// indistinguishable; flags always win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.JobsAPIBaseURL == "" {
		result.JobsAPIBaseURL = defaults.JobsAPIBaseURL
	}
	if result.StorePath == "" {
		result.StorePath = defaults.StorePath
	}

	if result.MinKeywordLen == 0 {
		result.MinKeywordLen = defaults.MinKeywordLen
	}
	if result.SearchPages == 0 {
		result.SearchPages = defaults.SearchPages
	}
	if result.PerPage == 0 {
		result.PerPage = defaults.PerPage
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// Defaults returns the built-in fallback configuration.
func Defaults() Config {
	return Config{
		StorePath:     DefaultStorePath,
		MinKeywordLen: DefaultMinKeywordLen,
		SearchPages:   DefaultSearchPages,
		PerPage:       DefaultPerPage,
		Port:          DefaultPort,
	}
}

// Resolve merges file config (optional), environment and built-in defaults.
// Precedence: cfg > env > defaults.
func Resolve(cfg Config) Config {
	merged := cfg.MergeWithDefaults(FromEnv())
	return merged.MergeWithDefaults(Defaults())
}
