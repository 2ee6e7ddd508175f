package structure

import (
	"context"
	"errors"
)

// ErrHistoryNotFound indicates no commands have been recorded for a viewer.
var ErrHistoryNotFound = errors.New("command history not found")

// HistoryStore persists the last command set per viewer session.
type HistoryStore interface {
	Find(ctx context.Context, viewer string) (History, error)
	Save(ctx context.Context, history History) (History, error)
	Delete(ctx context.Context, viewer string) error
}
