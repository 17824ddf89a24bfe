// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"fi-dashboard/internal/domain"
)

// Default input locations, relative to the working directory.
const (
	DefaultDataPath     = "data/processed/ethiopia_fi_enriched.csv"
	DefaultForecastPath = "data/processed/forecast_results.csv"
)

// Config holds the configuration for the dashboard server.
type Config struct {
	DataPath     string // unified dataset CSV
	ForecastPath string // scenario forecast CSV
	ListenAddr   string // HTTP listen address (default ":8080")
	LogLevel     string // log level: debug, info, warn, error (default "info")
	Env          string // environment: "development" (default) or "production"
	ConfigFile   string // optional YAML overlay

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 50)
	RateLimitBurst int     // burst capacity (default 100)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// Presentation
	Scenarios       []domain.Scenario         // closed scenario universe (default baseline, optimistic, pessimistic)
	OverviewMetrics []domain.MetricDefinition // overview cards (default ACC_OWNERSHIP, ACC_MM_ACCOUNT)

	// Cache refresh
	WatchDataFiles     bool   // invalidate cache entries when data files change
	CacheClearSchedule string // cron expression; empty disables scheduled clearing
	PreloadOnStart     bool   // load both datasets before serving (default true)

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// FileConfig is the YAML overlay. Values set here fill whatever the
// environment left unset.
type FileConfig struct {
	DataPath           string                    `yaml:"data_path"`
	ForecastPath       string                    `yaml:"forecast_path"`
	ListenAddr         string                    `yaml:"listen_addr"`
	Scenarios          []string                  `yaml:"scenarios"`
	OverviewMetrics    []domain.MetricDefinition `yaml:"overview_metrics"`
	CacheClearSchedule string                    `yaml:"cache_clear_schedule"`
}

// LoadFile reads a YAML overlay file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-configured
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &fc, nil
}

// Apply fills unset fields of c from fc.
func (c *Config) Apply(fc *FileConfig) error {
	if fc == nil {
		return nil
	}
	if c.DataPath == "" {
		c.DataPath = fc.DataPath
	}
	if c.ForecastPath == "" {
		c.ForecastPath = fc.ForecastPath
	}
	if c.ListenAddr == "" {
		c.ListenAddr = fc.ListenAddr
	}
	if c.CacheClearSchedule == "" {
		c.CacheClearSchedule = fc.CacheClearSchedule
	}
	if len(c.Scenarios) == 0 && len(fc.Scenarios) > 0 {
		scenarios, err := parseScenarios(fc.Scenarios)
		if err != nil {
			return err
		}
		c.Scenarios = scenarios
	}
	if len(c.OverviewMetrics) == 0 {
		for i, m := range fc.OverviewMetrics {
			if strings.TrimSpace(m.IndicatorCode) == "" {
				return fmt.Errorf("overview_metrics[%d]: indicator_code is required", i)
			}
			if m.Label == "" {
				m.Label = m.IndicatorCode
			}
			c.OverviewMetrics = append(c.OverviewMetrics, m)
		}
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables, then the YAML
// overlay named by CONFIG_FILE, then defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		DataPath:           os.Getenv("DATA_PATH"),
		ForecastPath:       os.Getenv("FORECAST_PATH"),
		ListenAddr:         os.Getenv("LISTEN_ADDR"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		Env:                os.Getenv("ENV"),
		ConfigFile:         os.Getenv("CONFIG_FILE"),
		CacheClearSchedule: strings.TrimSpace(os.Getenv("CACHE_CLEAR_SCHEDULE")),
		WatchDataFiles:     parseBoolEnvDefault("WATCH_DATA_FILES", false),
		PreloadOnStart:     parseBoolEnvDefault("PRELOAD_ON_START", true),
	}

	// Rate limiting
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring invalid RATE_LIMIT_RPS %q", v))
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring invalid RATE_LIMIT_BURST %q", v))
		}
	}

	// CORS
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}

	if v := os.Getenv("SCENARIOS"); v != "" {
		scenarios, err := parseScenarios(splitList(v))
		if err != nil {
			return nil, fmt.Errorf("SCENARIOS: %w", err)
		}
		cfg.Scenarios = scenarios
	}

	if cfg.ConfigFile != "" {
		fc, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		if err := cfg.Apply(fc); err != nil {
			return nil, fmt.Errorf("config file %s: %w", cfg.ConfigFile, err)
		}
	}

	cfg.ApplyDefaults()

	if _, err := os.Stat(cfg.ForecastPath); errors.Is(err, fs.ErrNotExist) {
		cfg.Warnings = append(cfg.Warnings,
			fmt.Sprintf("forecast dataset %s not found: the forecasts page will report an error", cfg.ForecastPath))
	}

	// Production mode: insecure or missing inputs are fatal errors.
	if cfg.IsProduction() {
		if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
			return nil, fmt.Errorf("CORS wildcard (*) is not allowed in production (ENV=production)")
		}
		if _, err := os.Stat(cfg.DataPath); err != nil {
			return nil, fmt.Errorf("DATA_PATH must point to a readable file in production: %w", err)
		}
	}

	return cfg, nil
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.DataPath == "" {
		c.DataPath = DefaultDataPath
	}
	if c.ForecastPath == "" {
		c.ForecastPath = DefaultForecastPath
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.RateLimitRPS == 0 {
		c.RateLimitRPS = 50
	}
	if c.RateLimitBurst == 0 {
		c.RateLimitBurst = 100
	}
	if len(c.CORSAllowedOrigins) == 0 {
		c.CORSAllowedOrigins = []string{"*"}
	}
	if len(c.Scenarios) == 0 {
		c.Scenarios = domain.DefaultScenarios()
	}
	if len(c.OverviewMetrics) == 0 {
		c.OverviewMetrics = domain.DefaultOverviewMetrics()
	}
}

func parseScenarios(names []string) ([]domain.Scenario, error) {
	seen := make(map[domain.Scenario]bool, len(names))
	out := make([]domain.Scenario, 0, len(names))
	for _, n := range names {
		s := domain.Scenario(strings.ToLower(strings.TrimSpace(n)))
		if s == "" {
			continue
		}
		if seen[s] {
			return nil, fmt.Errorf("duplicate scenario %q", s)
		}
		seen[s] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one scenario is required")
	}
	return out, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBoolEnvDefault(key string, defaultVal bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return defaultVal
	}
	if v == "0" || v == "false" || v == "no" || v == "off" {
		return false
	}
	if v == "1" || v == "true" || v == "yes" || v == "on" {
		return true
	}
	return defaultVal
}

// LoadDotEnv reads a .env file and sets any variables not already in the environment.
// Lines must be in KEY=VALUE format. Comments (#) and blank lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Env vars take precedence.
		if _, set := os.LookupEnv(key); !set {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
