package molsync

import (
	"log/slog"

	"github.com/helixml/molsync/domain/colour"
	"github.com/helixml/molsync/internal/config"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	dbURL           string
	dialect         string
	maxChunkLength  int
	hiddenColour    colour.RGB
	duplicatePolicy string
	hiddenPolicy    string
	scoreLow        colour.RGB
	scoreHigh       colour.RGB
	logger          *slog.Logger
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	cfg := &clientConfig{
		scoreLow:  colour.White,
		scoreHigh: colour.Red,
	}
	WithConfig(config.NewAppConfig())(cfg)
	return cfg
}

// Option configures the Client.
type Option func(*clientConfig)

// WithConfig applies every setting of an AppConfig, typically one loaded
// from the environment.
func WithConfig(app config.AppConfig) Option {
	return func(c *clientConfig) {
		c.dbURL = app.DBURL()
		c.dialect = app.Dialect()
		c.maxChunkLength = app.MaxChunkLength()
		c.hiddenColour = app.HiddenColour()
		c.duplicatePolicy = app.DuplicatePolicy()
		c.hiddenPolicy = app.HiddenPolicy()
	}
}

// WithSQLite keeps command history in a SQLite file.
func WithSQLite(path string) Option {
	return func(c *clientConfig) { c.dbURL = "sqlite:///" + path }
}

// WithPostgres keeps command history in PostgreSQL.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) { c.dbURL = dsn }
}

// WithDialect selects the viewer command dialect by name.
func WithDialect(name string) Option {
	return func(c *clientConfig) { c.dialect = name }
}

// WithMaxChunkLength bounds each command chunk, in characters. Zero or less
// disables chunking.
func WithMaxChunkLength(n int) Option {
	return func(c *clientConfig) { c.maxChunkLength = n }
}

// WithHiddenColour sets the colour of residues under hidden columns.
func WithHiddenColour(rgb colour.RGB) Option {
	return func(c *clientConfig) { c.hiddenColour = rgb }
}

// WithDuplicatePolicy selects how residues reached by more than one column
// are coloured: "first" or "consecutive".
func WithDuplicatePolicy(name string) Option {
	return func(c *clientConfig) { c.duplicatePolicy = name }
}

// WithHiddenPolicy selects how hidden columns are coloured: "override" or
// "computed".
func WithHiddenPolicy(name string) Option {
	return func(c *clientConfig) { c.hiddenPolicy = name }
}

// WithScoreColours sets the colours of the lowest and highest feature score
// for sessions using the score scheme.
func WithScoreColours(low, high colour.RGB) Option {
	return func(c *clientConfig) {
		c.scoreLow = low
		c.scoreHigh = high
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}
