// Package config provides application configuration.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/helixml/molsync/domain/colour"
)

// Default configuration values.
const (
	DefaultLogLevel        = "INFO"
	DefaultDialect         = "chimera"
	DefaultMaxChunkLength  = 32000
	DefaultHiddenColour    = "#808080"
	DefaultDuplicatePolicy = "first"
	DefaultHiddenPolicy    = "override"
	DefaultWorkerCount     = 1
	DefaultWatchInterval   = 2 * time.Second
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig holds the main application configuration.
type AppConfig struct {
	logLevel        string
	logFormat       LogFormat
	dialect         string
	maxChunkLength  int
	hiddenColour    colour.RGB
	duplicatePolicy string
	hiddenPolicy    string
	dbURL           string
	workerCount     int
	watchInterval   time.Duration
}

// NewAppConfig creates a new AppConfig with defaults. History is disabled
// until a database URL is set.
func NewAppConfig() AppConfig {
	return AppConfig{
		logLevel:        DefaultLogLevel,
		logFormat:       LogFormatPretty,
		dialect:         DefaultDialect,
		maxChunkLength:  DefaultMaxChunkLength,
		hiddenColour:    colour.Hidden,
		duplicatePolicy: DefaultDuplicatePolicy,
		hiddenPolicy:    DefaultHiddenPolicy,
		workerCount:     DefaultWorkerCount,
		watchInterval:   DefaultWatchInterval,
	}
}

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// Dialect returns the viewer command dialect name.
func (c AppConfig) Dialect() string { return c.dialect }

// MaxChunkLength returns the command chunk bound in runes. Zero or less
// disables chunking.
func (c AppConfig) MaxChunkLength() int { return c.maxChunkLength }

// HiddenColour returns the colour given to residues under hidden columns.
func (c AppConfig) HiddenColour() colour.RGB { return c.hiddenColour }

// DuplicatePolicy returns the duplicate residue policy name.
func (c AppConfig) DuplicatePolicy() string { return c.duplicatePolicy }

// HiddenPolicy returns the hidden column policy name.
func (c AppConfig) HiddenPolicy() string { return c.hiddenPolicy }

// DBURL returns the command history database URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// HistoryEnabled reports whether command history is persisted.
func (c AppConfig) HistoryEnabled() bool { return c.dbURL != "" }

// WorkerCount returns the number of session files processed concurrently.
func (c AppConfig) WorkerCount() int { return c.workerCount }

// WatchInterval returns how often watched sessions are regenerated.
func (c AppConfig) WatchInterval() time.Duration { return c.watchInterval }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithDialect sets the dialect name.
func WithDialect(name string) AppConfigOption {
	return func(c *AppConfig) { c.dialect = strings.ToLower(strings.TrimSpace(name)) }
}

// WithMaxChunkLength sets the chunk bound.
func WithMaxChunkLength(n int) AppConfigOption {
	return func(c *AppConfig) { c.maxChunkLength = n }
}

// WithHiddenColour sets the hidden column colour.
func WithHiddenColour(rgb colour.RGB) AppConfigOption {
	return func(c *AppConfig) { c.hiddenColour = rgb }
}

// WithDuplicatePolicy sets the duplicate residue policy name.
func WithDuplicatePolicy(name string) AppConfigOption {
	return func(c *AppConfig) { c.duplicatePolicy = strings.ToLower(strings.TrimSpace(name)) }
}

// WithHiddenPolicy sets the hidden column policy name.
func WithHiddenPolicy(name string) AppConfigOption {
	return func(c *AppConfig) { c.hiddenPolicy = strings.ToLower(strings.TrimSpace(name)) }
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithWorkerCount sets the worker count. Non-positive values are ignored.
func WithWorkerCount(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.workerCount = n
		}
	}
}

// WithWatchInterval sets the watch interval. Non-positive values are ignored.
func WithWatchInterval(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d > 0 {
			c.watchInterval = d
		}
	}
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	return NewAppConfig().Apply(opts...)
}

// Apply returns a copy of c with opts applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("log_level", c.logLevel),
		slog.String("dialect", c.dialect),
		slog.Int("max_chunk_length", c.maxChunkLength),
		slog.String("hidden_colour", c.hiddenColour.Hex()),
		slog.String("duplicate_policy", c.duplicatePolicy),
		slog.String("hidden_policy", c.hiddenPolicy),
		slog.String("db_url", c.maskedDBURL()),
		slog.Int("worker_count", c.workerCount),
		slog.Duration("watch_interval", c.watchInterval),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(disabled)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}
