package state_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	opts "github.com/goliatone/go-options-menu"
	"github.com/goliatone/go-options-menu/pkg/activity"
	"github.com/goliatone/go-options-menu/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type alliance int

const (
	red alliance = iota
	blue
)

func (a alliance) String() string {
	if a == blue {
		return "BLUE"
	}
	return "RED"
}

var (
	like      = opts.IntType(1, 0, 10, 99)
	subscribe = opts.BoolType(false)
	team      = opts.EnumType([]alliance{red, blue}, red)
)

func TestOpenMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "options.json")

	store, err := state.OpenFile(context.Background(), path, opts.DefaultConverters())
	require.NoError(t, err)
	assert.Empty(t, store.Values())
	assert.Equal(t, 99, state.Resolve(store, "LIKE", like))
	assert.Equal(t, path, store.Location())
}

func TestOpenCorruptFileReportsErrorAndStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"LIKE": "3",`), 0o644))

	store, err := state.OpenFile(context.Background(), path, opts.DefaultConverters())
	require.Error(t, err)
	require.NotNil(t, store)
	assert.True(t, errors.Is(err, state.ErrPersistence))
	assert.True(t, errors.Is(err, state.ErrCorruptDocument))

	var perr *state.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "load", perr.Op)
	assert.Equal(t, path, perr.Path)

	assert.Empty(t, store.Values())
	assert.Equal(t, false, state.Resolve(store, "SUBSCRIBE", subscribe))
}

func TestOpenNonObjectDocumentIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.json")
	require.NoError(t, os.WriteFile(path, []byte(`["LIKE"]`), 0o644))

	store, err := state.OpenFile(context.Background(), path, opts.DefaultConverters())
	require.ErrorIs(t, err, state.ErrCorruptDocument)
	assert.Empty(t, store.Values())
}

func TestResolveFallsBack(t *testing.T) {
	store := state.New(state.NewMemoryBackend(nil), opts.DefaultConverters())

	assert.Equal(t, 99, state.Resolve(store, "LIKE", like), "absent key")

	store.SetRaw("LIKE", "many")
	assert.Equal(t, 99, state.Resolve(store, "LIKE", like), "undecodable value")

	store.SetRaw("TEAM", "GREEN")
	assert.Equal(t, red, state.Resolve(store, "TEAM", team), "unknown enum name")

	store.SetRaw("LIKE", "4")
	assert.Equal(t, 4, state.Resolve(store, "LIKE", like))
	assert.Equal(t, 4, store.ResolveValue("LIKE", like))
}

func TestCommitThenResolve(t *testing.T) {
	ctx := context.Background()
	store := state.New(state.NewMemoryBackend(nil), opts.DefaultConverters())

	require.NoError(t, state.Commit(ctx, store, "LIKE", like, 7))
	require.NoError(t, state.Commit(ctx, store, "SUBSCRIBE", subscribe, true))
	require.NoError(t, state.Commit(ctx, store, "TEAM", team, blue))

	assert.Equal(t, 7, state.Resolve(store, "LIKE", like))
	assert.Equal(t, true, state.Resolve(store, "SUBSCRIBE", subscribe))
	assert.Equal(t, blue, state.Resolve(store, "TEAM", team))

	raw, ok := store.GetRaw("TEAM")
	require.True(t, ok)
	assert.Equal(t, "BLUE", raw)
}

func TestCommitValueRejectsWrongType(t *testing.T) {
	store := state.New(state.NewMemoryBackend(nil), opts.DefaultConverters())
	err := store.CommitValue(context.Background(), "LIKE", like, "7")
	require.Error(t, err)
	_, ok := store.GetRaw("LIKE")
	assert.False(t, ok)
}

func TestSaveReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "options.json")

	store, err := state.OpenFile(ctx, path, opts.DefaultConverters())
	require.NoError(t, err)
	store.SetRaw("B", "true")
	require.NoError(t, store.Save(ctx))
	assert.NotEmpty(t, store.Meta().SnapshotID)

	reopened, err := state.OpenFile(ctx, path, opts.DefaultConverters())
	require.NoError(t, err)
	assert.Equal(t, true, state.Resolve(reopened, "B", subscribe))
	assert.Equal(t, state.Document{"B": "true"}, reopened.Values())
}

func TestSaveOverwritesWholeFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "options.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"OLD": "1", "LIKE": "2"}`), 0o644))

	store, err := state.OpenFile(ctx, path, opts.DefaultConverters())
	require.NoError(t, err)
	store.SetRaw("LIKE", "3")
	require.NoError(t, store.Save(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"OLD": "1", "LIKE": "3"}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestReloadDiscardsEdits(t *testing.T) {
	ctx := context.Background()
	backend := state.NewMemoryBackend(state.Document{"LIKE": "5"})
	store, err := state.Open(ctx, backend, opts.DefaultConverters())
	require.NoError(t, err)

	store.SetRaw("LIKE", "9")
	require.NoError(t, store.Reload(ctx))
	assert.Equal(t, 5, state.Resolve(store, "LIKE", like))
}

type flakyBackend struct {
	*state.MemoryBackend
	failures int
	loadErr  error
}

func (b *flakyBackend) Load(ctx context.Context) (state.Document, state.Meta, bool, error) {
	if b.loadErr != nil {
		return nil, state.Meta{}, false, b.loadErr
	}
	return b.MemoryBackend.Load(ctx)
}

func (b *flakyBackend) Save(ctx context.Context, doc state.Document, meta state.Meta) (state.Meta, error) {
	if b.failures > 0 {
		b.failures--
		return state.Meta{}, errors.New("disk busy")
	}
	return b.MemoryBackend.Save(ctx, doc, meta)
}

func TestReloadFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{MemoryBackend: state.NewMemoryBackend(state.Document{"LIKE": "5"})}
	store, err := state.Open(ctx, backend, opts.DefaultConverters())
	require.NoError(t, err)

	backend.loadErr = errors.New("unreadable")
	store.SetRaw("LIKE", "6")
	err = store.Reload(ctx)
	require.ErrorIs(t, err, state.ErrPersistence)
	assert.Equal(t, 6, state.Resolve(store, "LIKE", like))
}

func TestSaveFailureIsReported(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{MemoryBackend: state.NewMemoryBackend(nil), failures: 1}
	store := state.New(backend, opts.DefaultConverters())
	store.SetRaw("LIKE", "1")

	err := store.Save(ctx)
	require.ErrorIs(t, err, state.ErrPersistence)
	assert.Equal(t, 0, backend.Saves())

	require.NoError(t, store.Save(ctx), "caller may retry after a failed save")
	saved, ok := backend.Snapshot()
	require.True(t, ok)
	assert.Equal(t, "1", saved["LIKE"])
}

func TestSaveRetry(t *testing.T) {
	backend := &flakyBackend{MemoryBackend: state.NewMemoryBackend(nil), failures: 2}
	store := state.New(backend, opts.DefaultConverters(), state.WithSaveRetry(3, time.Millisecond))
	store.SetRaw("LIKE", "1")

	require.NoError(t, store.Save(context.Background()))
	assert.Equal(t, 1, backend.Saves())
}

func TestSaveConcurrentWithCommits(t *testing.T) {
	ctx := context.Background()
	backend := state.NewMemoryBackend(nil)
	store := state.New(backend, opts.DefaultConverters())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			assert.NoError(t, store.CommitValue(ctx, "LIKE", like, i%11))
			store.SetRaw("RAW", strconv.Itoa(i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			assert.NoError(t, store.Save(ctx))
		}
	}()
	wg.Wait()

	require.NoError(t, store.Save(ctx))
	snapshot, ok := backend.Snapshot()
	require.True(t, ok)
	assert.Equal(t, store.Values(), snapshot)
	assert.Equal(t, state.Document{"LIKE": "1", "RAW": "199"}, snapshot)
	assert.Equal(t, 51, backend.Saves())
}

func TestActivityEvents(t *testing.T) {
	ctx := context.Background()
	capture := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{capture}, activity.Config{Enabled: true})
	store, err := state.Open(ctx, state.NewMemoryBackend(nil), opts.DefaultConverters(),
		state.WithActivity(emitter), state.WithActor("operator"))
	require.NoError(t, err)

	require.NoError(t, state.Commit(ctx, store, "LIKE", like, 3))
	require.NoError(t, state.Commit(ctx, store, "LIKE", like, 4))
	require.NoError(t, store.Save(ctx))

	require.Equal(t, []string{
		activity.VerbOptionsLoaded,
		activity.VerbOptionCommitted,
		activity.VerbOptionCommitted,
		activity.VerbOptionsSaved,
	}, capture.Verbs())

	first := capture.Events[1]
	assert.Equal(t, activity.VerbOptionCommitted, first.Verb)
	assert.Equal(t, "LIKE", first.ObjectID)
	assert.Equal(t, "operator", first.ActorID)
	assert.NotContains(t, first.Metadata, "old_value")

	second := capture.Events[2]
	assert.Equal(t, "3", second.Metadata["old_value"])
	assert.Equal(t, "4", second.Metadata["new_value"])
	assert.Equal(t, "int", second.Metadata["kind"])

	saved := capture.Events[3]
	assert.Equal(t, activity.VerbOptionsSaved, saved.Verb)
	assert.Equal(t, store.Meta().SnapshotID, saved.Metadata["snapshot_id"])
}

func TestActivityHookFailureDoesNotFailCommit(t *testing.T) {
	emitter := activity.NewEmitter(activity.Hooks{&activity.CaptureHook{Err: errors.New("down")}}, activity.Config{Enabled: true})
	store := state.New(state.NewMemoryBackend(nil), opts.DefaultConverters(), state.WithActivity(emitter))
	require.NoError(t, state.Commit(context.Background(), store, "SUBSCRIBE", subscribe, true))
}
