package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/helixml/molsync/domain/colour"
)

// EnvPrefix is the prefix of every environment variable.
const EnvPrefix = "MOLSYNC"

// EnvConfig holds all environment-based configuration.
// Field names map to environment variables with the MOLSYNC_ prefix.
type EnvConfig struct {
	// LogLevel is the log verbosity level.
	// Env: MOLSYNC_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: MOLSYNC_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// Dialect is the viewer command dialect (chimera, chimerax or jmol).
	// Env: MOLSYNC_DIALECT (default: chimera)
	Dialect string `envconfig:"DIALECT" default:"chimera"`

	// MaxChunkLength bounds each command chunk, in characters.
	// Env: MOLSYNC_MAX_CHUNK_LENGTH (default: 32000)
	MaxChunkLength int `envconfig:"MAX_CHUNK_LENGTH" default:"32000"`

	// HiddenColour colours residues under hidden columns, as #rrggbb or r,g,b.
	// Env: MOLSYNC_HIDDEN_COLOUR (default: #808080)
	HiddenColour string `envconfig:"HIDDEN_COLOUR" default:"#808080"`

	// DuplicatePolicy is first or consecutive.
	// Env: MOLSYNC_DUPLICATE_POLICY (default: first)
	DuplicatePolicy string `envconfig:"DUPLICATE_POLICY" default:"first"`

	// HiddenPolicy is override or computed.
	// Env: MOLSYNC_HIDDEN_POLICY (default: override)
	HiddenPolicy string `envconfig:"HIDDEN_POLICY" default:"override"`

	// DBURL is the command history database URL. Empty disables history.
	// Env: MOLSYNC_DB_URL
	DBURL string `envconfig:"DB_URL"`

	// WorkerCount is the number of session files processed concurrently.
	// Env: MOLSYNC_WORKER_COUNT (default: 1)
	WorkerCount int `envconfig:"WORKER_COUNT" default:"1"`

	// WatchIntervalSeconds is how often watched sessions are regenerated.
	// Env: MOLSYNC_WATCH_INTERVAL_SECONDS (default: 2)
	WatchIntervalSeconds float64 `envconfig:"WATCH_INTERVAL_SECONDS" default:"2"`
}

// LoadFromEnv loads configuration from MOLSYNC_ environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() (AppConfig, error) {
	cfg := NewAppConfig()

	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.Dialect != "" {
		cfg = applyOption(cfg, WithDialect(e.Dialect))
	}
	cfg = applyOption(cfg, WithMaxChunkLength(e.MaxChunkLength))

	if e.HiddenColour != "" {
		rgb, err := colour.Parse(e.HiddenColour)
		if err != nil {
			return AppConfig{}, fmt.Errorf("%s_HIDDEN_COLOUR: %w", EnvPrefix, err)
		}
		cfg = applyOption(cfg, WithHiddenColour(rgb))
	}
	if e.DuplicatePolicy != "" {
		cfg = applyOption(cfg, WithDuplicatePolicy(e.DuplicatePolicy))
	}
	if e.HiddenPolicy != "" {
		cfg = applyOption(cfg, WithHiddenPolicy(e.HiddenPolicy))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	cfg = applyOption(cfg, WithWorkerCount(e.WorkerCount))
	cfg = applyOption(cfg, WithWatchInterval(time.Duration(e.WatchIntervalSeconds*float64(time.Second))))

	return cfg, nil
}

func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
