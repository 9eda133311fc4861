// Package config loads application settings from NEXUS_* environment
// variables. Model settings live in llm.LoadConfig.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/nexusai/nexus-crm/internal/intelligence"
)

// Prefix is prepended to every variable name, e.g. NEXUS_DB_PATH.
const Prefix = "NEXUS"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Storage
	DBPath string `envconfig:"DB_PATH"` // empty means ~/.nexus/nexus.db

	// HTTP API
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8787"`
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"` // comma-separated

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"` // text or json

	// Simulated typing delay of the chat assistant
	ChatMinDelay time.Duration `envconfig:"CHAT_MIN_DELAY" default:"800ms"`
	ChatMaxDelay time.Duration `envconfig:"CHAT_MAX_DELAY" default:"1600ms"`

	// Company profile sent to the model
	CompanyName          string `envconfig:"COMPANY_NAME"`
	CompanyPositioning   string `envconfig:"COMPANY_POSITIONING"`
	CompanyBusinessModel string `envconfig:"COMPANY_BUSINESS_MODEL"`
	CompanyIdealClient   string `envconfig:"COMPANY_IDEAL_CLIENT"`
	CompanyStyle         string `envconfig:"COMPANY_STYLE"`
}

// Load reads configuration from NEXUS_* environment variables. A .env file in
// the working directory fills in variables that are not already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: want text or json", c.LogFormat)
	}
	if c.ChatMinDelay < 0 || c.ChatMaxDelay < c.ChatMinDelay {
		return fmt.Errorf("invalid chat delay range %s..%s", c.ChatMinDelay, c.ChatMaxDelay)
	}
	return nil
}

// CORSOriginList returns the parsed list of allowed origins.
func (c *Config) CORSOriginList() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// CompanyProfile overlays the configured profile fields on the defaults.
func (c *Config) CompanyProfile() intelligence.CompanyProfile {
	p := intelligence.DefaultCompanyProfile()
	if v := strings.TrimSpace(c.CompanyName); v != "" {
		p.Name = v
	}
	if v := strings.TrimSpace(c.CompanyPositioning); v != "" {
		p.Positioning = v
	}
	if v := strings.TrimSpace(c.CompanyBusinessModel); v != "" {
		p.BusinessModel = v
	}
	if v := strings.TrimSpace(c.CompanyIdealClient); v != "" {
		p.IdealClient = v
	}
	if v := strings.TrimSpace(c.CompanyStyle); v != "" {
		p.Style = v
	}
	return p
}

// NewLogger builds the process logger from LogLevel and LogFormat.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
