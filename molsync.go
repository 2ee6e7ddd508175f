// Package molsync turns the colours and features of a sequence alignment
// into command scripts for molecular structure viewers.
//
// Basic usage:
//
//	client, err := molsync.New(
//	    molsync.WithDialect("chimerax"),
//	    molsync.WithSQLite(".molsync/history.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	ws, err := molsync.LoadWorkspace("session.yaml")
//	commands, err := client.ColourBySequence(ctx, ws)
//	for _, chunk := range commands.Chunks() {
//	    viewer.Send(chunk)
//	}
package molsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/helixml/molsync/application/service"
	"github.com/helixml/molsync/domain/colour"
	"github.com/helixml/molsync/domain/structure"
	"github.com/helixml/molsync/infrastructure/dialect"
	"github.com/helixml/molsync/infrastructure/persistence"
	"github.com/helixml/molsync/internal/database"
	"github.com/helixml/molsync/internal/log"
)

// Client generates viewer commands and tracks what each viewer was last sent.
type Client struct {
	colouring *service.Colouring
	sync      *service.Synchroniser
	history   *persistence.CommandHistoryStore
	db        *database.Database
	scoreLow  colour.RGB
	scoreHigh colour.RGB
	logger    *slog.Logger
	closed    atomic.Bool
}

// New creates a Client. Command history is persisted only when a database
// is configured.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	d, err := dialect.ForName(cfg.dialect)
	if err != nil {
		return nil, err
	}
	duplicates, err := service.ParseDuplicateResiduePolicy(cfg.duplicatePolicy)
	if err != nil {
		return nil, err
	}
	hidden, err := service.ParseHiddenColumnPolicy(cfg.hiddenPolicy)
	if err != nil {
		return nil, err
	}

	c := &Client{
		colouring: service.NewColouring(
			service.WithDialect(d),
			service.WithMaxChunkLength(cfg.maxChunkLength),
			service.WithHiddenColour(cfg.hiddenColour),
			service.WithDuplicateResiduePolicy(duplicates),
			service.WithHiddenColumnPolicy(hidden),
			service.WithLogger(logger),
		),
		scoreLow:  cfg.scoreLow,
		scoreHigh: cfg.scoreHigh,
		logger:    logger,
	}

	var store structure.HistoryStore
	if cfg.dbURL != "" {
		ctx := context.Background()
		db, err := database.NewDatabase(ctx, cfg.dbURL, logger)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := persistence.AutoMigrate(ctx, db); err != nil {
			return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), db.Close())
		}
		history := persistence.NewCommandHistoryStore(db)
		c.db = &db
		c.history = &history
		store = history
	}
	c.sync = service.NewSynchroniser(store, logger)

	logger.Debug("molsync client created",
		slog.String("dialect", d.Name()),
		slog.Bool("history", store != nil),
	)
	return c, nil
}

// Close releases the history database, if any.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}
	if c.db == nil {
		return nil
	}
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// Dialect returns the name of the configured dialect.
func (c *Client) Dialect() string { return c.colouring.Dialect().Name() }

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger { return c.logger }

// ColourBySequence generates commands colouring each structure residue as
// its aligned residue is coloured by the session's scheme.
func (c *Client) ColourBySequence(ctx context.Context, ws *Workspace) (structure.CommandSet, error) {
	if c.closed.Load() {
		return structure.CommandSet{}, ErrClientClosed
	}
	resolver, err := ws.Resolver(c.scoreLow, c.scoreHigh)
	if err != nil {
		return structure.CommandSet{}, err
	}
	ctx = passContext(ctx)
	return c.colouring.ColourBySequence(ctx, ws.View(), ws.Structures(), resolver), nil
}

// SetAttributes generates commands setting a residue attribute for each
// named feature. With no names every feature kind of the session is used.
func (c *Client) SetAttributes(ctx context.Context, ws *Workspace, features ...string) (structure.CommandSet, error) {
	if c.closed.Load() {
		return structure.CommandSet{}, ErrClientClosed
	}
	if len(features) == 0 {
		features = ws.Features().Kinds()
	}
	ctx = passContext(ctx)
	return c.colouring.SetAttributes(ctx, ws.View(), ws.Structures(), ws.Features(), features), nil
}

// ColourByChain generates commands giving each chain its own colour.
func (c *Client) ColourByChain(ws *Workspace) structure.CommandSet {
	return c.colouring.ColourByChain(ws.Structures())
}

// ColourByCharge generates commands colouring charged residues.
func (c *Client) ColourByCharge(ws *Workspace) structure.CommandSet {
	return c.colouring.ColourByCharge(ws.Structures())
}

// AddListener registers l to be told when a viewer's commands change.
func (c *Client) AddListener(l service.Listener) {
	c.sync.AddListener(l)
}

// Publish records commands as the latest for viewer and reports whether
// they differ from what the viewer was last sent.
func (c *Client) Publish(ctx context.Context, viewer string, commands structure.CommandSet) (bool, error) {
	if c.closed.Load() {
		return false, ErrClientClosed
	}
	return c.sync.Publish(log.WithViewer(ctx, viewer), viewer, commands)
}

// Forget drops what viewer was last sent.
func (c *Client) Forget(ctx context.Context, viewer string) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	return c.sync.Forget(log.WithViewer(ctx, viewer), viewer)
}

// Watcher returns a watcher publishing generate's commands for viewer
// every interval. Listeners added to the client hear of each change.
func (c *Client) Watcher(viewer string, interval time.Duration, generate service.Generator) *service.Watcher {
	return service.NewWatcher(c.sync, viewer, func(ctx context.Context) (structure.CommandSet, error) {
		return generate(passContext(log.WithViewer(ctx, viewer)))
	}, interval, c.logger)
}

// History returns the commands last recorded for viewer.
func (c *Client) History(ctx context.Context, viewer string) (structure.History, error) {
	if c.closed.Load() {
		return structure.History{}, ErrClientClosed
	}
	if c.history == nil {
		return structure.History{}, ErrNoHistory
	}
	return c.history.Find(ctx, viewer)
}

func passContext(ctx context.Context) context.Context {
	if log.PassID(ctx) != "" {
		return ctx
	}
	return log.WithPassID(ctx, log.NewPassID())
}
