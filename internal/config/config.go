// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults for an empty configuration.
const (
	DefaultAppName        = "Job Matcher API"
	DefaultVersion        = "1.0.0"
	DefaultFrontendURL    = "http://localhost:5173"
	DefaultPort           = 8000
	DefaultMaxUploadMB    = 10
	DefaultRequestTimeout = 60 * time.Second
)

// Config represents the application configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, and environment
// variables override both.
type Config struct {
	// Service
	AppName     string `json:"app_name,omitempty"`
	Version     string `json:"version,omitempty"`
	FrontendURL string `json:"frontend_url,omitempty"` // Only origin allowed by CORS
	Port        int    `json:"port,omitempty"`

	// Limits
	MaxUploadMB           int `json:"max_upload_mb,omitempty"`           // Largest accepted PDF upload
	RequestTimeoutSeconds int `json:"request_timeout_seconds,omitempty"` // Per-request deadline for comparisons

	// Matching
	SynonymsPath   string  `json:"synonyms_path,omitempty"`   // Synonym table replacing the built-in one
	FuzzyThreshold *float64 `json:"fuzzy_threshold,omitempty"` // Minimum fuzzy score (0-100); nil keeps the engine default
	SubstringFloor *float64 `json:"substring_floor,omitempty"` // Score given to substring pairs (0-100); nil keeps the engine default

	// Behavior
	APIKey     string `json:"api_key,omitempty"`     // Gemini API key
	UseBrowser bool   `json:"use_browser,omitempty"` // Render short job pages in headless Chrome
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		AppName:               DefaultAppName,
		Version:               DefaultVersion,
		FrontendURL:           DefaultFrontendURL,
		Port:                  DefaultPort,
		MaxUploadMB:           DefaultMaxUploadMB,
		RequestTimeoutSeconds: int(DefaultRequestTimeout / time.Second),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// Load reads the optional config file at path, overlays the environment and
// fills the remaining gaps with defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides fields with any of GEMINI_API_KEY, FRONTEND_URL, PORT,
// SYNONYMS_PATH, USE_BROWSER, MAX_UPLOAD_MB and REQUEST_TIMEOUT that are set.
// REQUEST_TIMEOUT accepts a Go duration ("90s") or a number of seconds.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		c.FrontendURL = v
	}
	if v := os.Getenv("SYNONYMS_PATH"); v != "" {
		c.SynonymsPath = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT must be an integer: %q", v)
		}
		c.Port = port
	}
	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		mb, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: MAX_UPLOAD_MB must be an integer: %q", v)
		}
		c.MaxUploadMB = mb
	}
	if v := os.Getenv("USE_BROWSER"); v != "" {
		useBrowser, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config error: USE_BROWSER must be a boolean: %q", v)
		}
		c.UseBrowser = useBrowser
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		timeout, err := parseTimeout(v)
		if err != nil {
			return err
		}
		c.RequestTimeoutSeconds = int(timeout / time.Second)
	}
	return nil
}

func parseTimeout(v string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(v); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config error: REQUEST_TIMEOUT must be a duration or seconds: %q", v)
	}
	return d, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.MaxUploadMB < 0 {
		return fmt.Errorf("config error: 'max_upload_mb' must be non-negative")
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'request_timeout_seconds' must be non-negative")
	}
	if !inPercentRange(c.FuzzyThreshold) {
		return fmt.Errorf("config error: 'fuzzy_threshold' must be between 0 and 100")
	}
	if !inPercentRange(c.SubstringFloor) {
		return fmt.Errorf("config error: 'substring_floor' must be between 0 and 100")
	}

	if c.FrontendURL != "" {
		u, err := url.Parse(c.FrontendURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("config error: 'frontend_url' must be an http(s) origin: %s", c.FrontendURL)
		}
	}

	// Validate file paths exist (if specified)
	if c.SynonymsPath != "" {
		if _, err := os.Stat(c.SynonymsPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: synonyms file not found: %s", c.SynonymsPath)
		}
	}

	return nil
}

func inPercentRange(v *float64) bool {
	return v == nil || (*v >= 0 && *v <= 100)
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.AppName == "" {
		result.AppName = defaults.AppName
	}
	if result.Version == "" {
		result.Version = defaults.Version
	}
	if result.FrontendURL == "" {
		result.FrontendURL = defaults.FrontendURL
	}
	if result.SynonymsPath == "" {
		result.SynonymsPath = defaults.SynonymsPath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadMB == 0 {
		result.MaxUploadMB = defaults.MaxUploadMB
	}
	if result.RequestTimeoutSeconds == 0 {
		result.RequestTimeoutSeconds = defaults.RequestTimeoutSeconds
	}

	// Score fields: nil means unset, so an explicit 0 survives the merge
	if result.FuzzyThreshold == nil {
		result.FuzzyThreshold = defaults.FuzzyThreshold
	}
	if result.SubstringFloor == nil {
		result.SubstringFloor = defaults.SubstringFloor
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags and env should always win for bools)

	return result
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// RequestTimeout returns the per-request deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// AllowedOrigin returns the frontend origin without a trailing slash.
func (c *Config) AllowedOrigin() string {
	return strings.TrimRight(c.FrontendURL, "/")
}
