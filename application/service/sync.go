package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/helixml/molsync/domain/structure"
)

// Listener is told when a viewer session's commands change.
type Listener interface {
	CommandsChanged(ctx context.Context, viewer string, commands structure.CommandSet) error
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(ctx context.Context, viewer string, commands structure.CommandSet) error

// CommandsChanged implements Listener.
func (f ListenerFunc) CommandsChanged(ctx context.Context, viewer string, commands structure.CommandSet) error {
	return f(ctx, viewer, commands)
}

// Synchroniser remembers the last command set sent to each viewer session
// and notifies listeners only when a newly generated set differs. With a
// HistoryStore the last set survives restarts.
type Synchroniser struct {
	store     structure.HistoryStore
	logger    *slog.Logger
	mu        sync.Mutex
	digests   map[string]string
	listeners []Listener
}

// NewSynchroniser creates a Synchroniser. store may be nil.
func NewSynchroniser(store structure.HistoryStore, logger *slog.Logger) *Synchroniser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchroniser{
		store:   store,
		logger:  logger,
		digests: make(map[string]string),
	}
}

// AddListener registers l.
func (s *Synchroniser) AddListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Publish records commands for viewer and notifies listeners if they differ
// from the last set recorded. It reports whether they differed.
func (s *Synchroniser) Publish(ctx context.Context, viewer string, commands structure.CommandSet) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	digest := commands.Digest()
	previous, err := s.lastDigest(ctx, viewer)
	if err != nil {
		return false, err
	}
	if previous == digest {
		s.logger.DebugContext(ctx, "commands unchanged", slog.String("viewer", viewer))
		return false, nil
	}

	if s.store != nil {
		if _, err := s.store.Save(ctx, structure.NewHistory(viewer, commands)); err != nil {
			return false, fmt.Errorf("save command history: %w", err)
		}
	}
	s.digests[viewer] = digest

	var errs []error
	for _, l := range s.listeners {
		if err := l.CommandsChanged(ctx, viewer, commands); err != nil {
			errs = append(errs, err)
		}
	}

	s.logger.InfoContext(ctx, "commands changed",
		slog.String("viewer", viewer),
		slog.Int("chunks", len(commands.Chunks())),
		slog.Int("listeners", len(s.listeners)),
	)
	if len(errs) > 0 {
		return true, fmt.Errorf("notify listeners: %w", errors.Join(errs...))
	}
	return true, nil
}

// Forget drops the recorded commands of viewer, so the next Publish always
// notifies.
func (s *Synchroniser) Forget(ctx context.Context, viewer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.digests, viewer)
	if s.store == nil {
		return nil
	}
	if err := s.store.Delete(ctx, viewer); err != nil {
		return fmt.Errorf("delete command history: %w", err)
	}
	return nil
}

func (s *Synchroniser) lastDigest(ctx context.Context, viewer string) (string, error) {
	if d, ok := s.digests[viewer]; ok {
		return d, nil
	}
	if s.store == nil {
		return "", nil
	}
	h, err := s.store.Find(ctx, viewer)
	if errors.Is(err, structure.ErrHistoryNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find command history: %w", err)
	}
	s.digests[viewer] = h.Digest()
	return h.Digest(), nil
}
