package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/molsync/domain/structure"
	"github.com/helixml/molsync/internal/database"
)

func newTestStore(t *testing.T) CommandHistoryStore {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, "sqlite:///"+filepath.Join(t.TempDir(), "history.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, AutoMigrate(ctx, db))
	return NewCommandHistoryStore(db)
}

func TestCommandHistoryStore_FindMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Find(context.Background(), "nobody")
	assert.ErrorIs(t, err, structure.ErrHistoryNotFound)
}

func TestCommandHistoryStore_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	set := structure.NewCommandSet(
		[]string{"1abc.pdb"},
		[]string{"color #ff0000 #1:1-5.A", "color #0000ff #1:6.A"},
	)

	saved, err := store.Save(ctx, structure.NewHistory("chimera-1", set))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID())

	found, err := store.Find(ctx, "chimera-1")
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), found.ID())
	assert.Equal(t, set.Digest(), found.Digest())
	assert.True(t, set.Equal(found.Commands()))
	assert.Equal(t, []string{"1abc.pdb"}, found.Commands().Files())
}

func TestCommandHistoryStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.Save(ctx, structure.NewHistory("v", structure.NewCommandSet(nil, []string{"rainbow chain"})))
	require.NoError(t, err)
	second, err := store.Save(ctx, structure.NewHistory("v", structure.NewCommandSet(nil, []string{"color white"})))
	require.NoError(t, err)

	assert.Equal(t, first.ID(), second.ID())
	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	found, err := store.Find(ctx, "v")
	require.NoError(t, err)
	assert.Equal(t, []string{"color white"}, found.Commands().Chunks())
}

func TestCommandHistoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Save(ctx, structure.NewHistory("v", structure.NewCommandSet(nil, []string{"rainbow chain"})))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "v"))
	require.NoError(t, store.Delete(ctx, "v"))

	_, err = store.Find(ctx, "v")
	assert.ErrorIs(t, err, structure.ErrHistoryNotFound)
}

func TestCommandHistoryStore_EmptyCommandSet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	empty := structure.NewCommandSet(nil, nil)

	_, err := store.Save(ctx, structure.NewHistory("v", empty))
	require.NoError(t, err)

	found, err := store.Find(ctx, "v")
	require.NoError(t, err)
	assert.True(t, found.Commands().IsEmpty())
	assert.Equal(t, empty.Digest(), found.Digest())
}

func TestCommandHistoryMapper_RoundTrip(t *testing.T) {
	mapper := CommandHistoryMapper{}
	h := structure.NewHistory("v", structure.NewCommandSet([]string{"a", "b"}, []string{"x"}))

	model := mapper.ToModel(h)
	assert.Equal(t, `["a","b"]`, model.Files)
	assert.Equal(t, `["x"]`, model.Commands)

	back, err := mapper.ToDomain(model)
	require.NoError(t, err)
	assert.Equal(t, h.Digest(), back.Digest())
	assert.True(t, h.Commands().Equal(back.Commands()))
}

func TestCommandHistoryMapper_CorruptJSON(t *testing.T) {
	_, err := CommandHistoryMapper{}.ToDomain(CommandHistoryModel{Viewer: "v", Commands: "not json"})
	assert.Error(t, err)
}
