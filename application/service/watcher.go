package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/helixml/molsync/domain/structure"
)

// Generator produces the current command set of a viewer session.
type Generator func(ctx context.Context) (structure.CommandSet, error)

// Watcher regenerates a viewer's commands on a timer and publishes them
// through a Synchroniser, so listeners hear only of real changes.
type Watcher struct {
	sync     *Synchroniser
	viewer   string
	generate Generator
	interval time.Duration
	logger   *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewWatcher creates a Watcher for viewer.
func NewWatcher(s *Synchroniser, viewer string, generate Generator, interval time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		sync:     s,
		viewer:   viewer,
		generate: generate,
		interval: interval,
		logger:   logger,
	}
}

// Start begins watching in a background goroutine. The first generation
// runs immediately.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Go(func() {
		w.run(ctx)
	})

	w.logger.Info("watch started",
		slog.String("viewer", w.viewer),
		slog.Duration("interval", w.interval),
	)
}

// Stop cancels the background goroutine and waits for it to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
	w.logger.Info("watch stopped", slog.String("viewer", w.viewer))
}

func (w *Watcher) run(ctx context.Context) {
	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick logs failures and carries on; a session being rewritten is often
// unreadable for a moment.
func (w *Watcher) tick(ctx context.Context) {
	set, err := w.generate(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.WarnContext(ctx, "watch failed to generate commands",
			slog.String("viewer", w.viewer),
			slog.String("error", err.Error()),
		)
		return
	}
	if _, err := w.sync.Publish(ctx, w.viewer, set); err != nil && ctx.Err() == nil {
		w.logger.ErrorContext(ctx, "watch failed to publish commands",
			slog.String("viewer", w.viewer),
			slog.String("error", err.Error()),
		)
	}
}
