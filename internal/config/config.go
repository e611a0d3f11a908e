package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is built once at startup and passed into the pieces that need it;
// nothing reads the environment after Load returns.
type Config struct {
	// Tracker
	Token  string `yaml:"-"` // env only, never from file
	Repo   string `yaml:"repo"`
	APIURL string `yaml:"api_url"`

	// Plan document
	PlanPath string `yaml:"plan_path"`
	Marker   string `yaml:"marker"`
	Label    string `yaml:"label"`

	DryRun bool `yaml:"dry_run"`

	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// Server mode
	Port           string `yaml:"port"`
	APIKey         string `yaml:"-"` // env only, never from file
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

func defaults() Config {
	return Config{
		APIURL:         "https://api.github.com",
		Marker:         "### Phase 9",
		Label:          "new_for_wave",
		HTTPTimeout:    30 * time.Second,
		Port:           "8091",
		MaxUploadBytes: 10485760, // 10MB
	}
}

// Load builds configuration from defaults, an optional YAML file, and
// environment overrides, in that order. An empty path falls back to
// PLANFILER_CONFIG, then to ./planfiler.yaml if one exists.
func Load(path string) (Config, error) {
	cfg := defaults()

	explicit := path != ""
	if path == "" {
		path = envOr("PLANFILER_CONFIG", "planfiler.yaml")
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case explicit || !os.IsNotExist(err):
		return cfg, fmt.Errorf("read config: %w", err)
	}

	cfg.Token = envOr("GITHUB_TOKEN", cfg.Token)
	cfg.Repo = envOr("GITHUB_REPO", cfg.Repo)
	cfg.APIURL = envOr("GITHUB_API_URL", cfg.APIURL)
	cfg.PlanPath = envOr("PLAN_PATH", cfg.PlanPath)
	cfg.Marker = envOr("SECTION_MARKER", cfg.Marker)
	cfg.Label = envOr("ISSUE_LABEL", cfg.Label)
	cfg.DryRun = envBool("DRY_RUN", cfg.DryRun)
	cfg.HTTPTimeout = envDuration("HTTP_TIMEOUT", cfg.HTTPTimeout)
	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("PLANFILER_API_KEY", cfg.APIKey)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}

	return cfg, nil
}

// ValidateFiling checks the values the one-shot filing run needs. The
// token is intentionally not required: an absent token surfaces as an
// authorization error from the tracker, per entry.
func (c Config) ValidateFiling() error {
	if c.Repo == "" {
		return fmt.Errorf("repository is required (GITHUB_REPO or repo in config file)")
	}
	if c.Marker == "" {
		return fmt.Errorf("section marker is required")
	}
	return nil
}

// ValidateServe checks the values server mode needs.
func (c Config) ValidateServe() error {
	if err := c.ValidateFiling(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("PLANFILER_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
