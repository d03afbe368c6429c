package stores_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharo-jef/checklist-sub001/internal/data/db"
	"github.com/sharo-jef/checklist-sub001/internal/data/stores"
)

func newTestStore(t *testing.T) *stores.KVStore {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return stores.NewKVStore(database)
}

func TestKVStore_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, store.Set(ctx, "k", payload{Name: "preflight", Count: 3}))

	var got payload
	require.NoError(t, store.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "preflight", Count: 3}, got)
}

func TestKVStore_GetMissingKey(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	var dest string
	err := store.Get(ctx, "missing", &dest)
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.True(t, stores.IsNotFoundError(err))
}

func TestKVStore_SetReplacesValue(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, "k", "first"))
	require.NoError(t, store.Set(ctx, "k", "second"))

	var got string
	require.NoError(t, store.Get(ctx, "k", &got))
	assert.Equal(t, "second", got)
}

func TestKVStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, "k", 1))
	require.NoError(t, store.Delete(ctx, "k"))

	has, err := store.Has(ctx, "k")
	require.NoError(t, err)
	assert.False(t, has)

	// Deleting a missing key is not an error.
	require.NoError(t, store.Delete(ctx, "k"))
}

func TestKVStore_Has(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	has, err := store.Has(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.Set(ctx, "exists", true))
	has, err = store.Has(ctx, "exists")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestKVStore_ListKeys(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, "b", 2))
	require.NoError(t, store.Set(ctx, "a", 1))
	require.NoError(t, store.Set(ctx, "c", 3))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestKVStore_GetRaw(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Set(ctx, "k", map[string]int{"n": 1}))

	entry, err := store.GetRaw(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "k", entry.Key)
	assert.JSONEq(t, `{"n":1}`, string(entry.Value))
	assert.False(t, entry.CreatedAt.IsZero())
	assert.False(t, entry.UpdatedAt.IsZero())

	_, err = store.GetRaw(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestKVStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	database, err := db.Open(dir, db.DefaultOpenOptions())
	require.NoError(t, err)
	store := stores.NewKVStore(database)
	require.NoError(t, store.Set(ctx, "k", "kept"))
	require.NoError(t, database.Close())

	database, err = db.Open(dir, db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	var got string
	require.NoError(t, stores.NewKVStore(database).Get(ctx, "k", &got))
	assert.Equal(t, "kept", got)
}
