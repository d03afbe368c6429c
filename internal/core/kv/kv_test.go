package kv_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharo-jef/checklist-sub001/internal/core/kv"
)

// memKV is an in-memory KV for exercising the typed wrapper without a
// database.
type memKV struct {
	data map[string]json.RawMessage
}

func newMemKV() *memKV {
	return &memKV{data: map[string]json.RawMessage{}}
}

func (m *memKV) Get(_ context.Context, key string, dest any) error {
	raw, ok := m.data[key]
	if !ok {
		return fmt.Errorf("get key %q: %w", key, sql.ErrNoRows)
	}
	return json.Unmarshal(raw, dest)
}

func (m *memKV) GetRaw(_ context.Context, key string) (kv.Entry, error) {
	raw, ok := m.data[key]
	if !ok {
		return kv.Entry{}, fmt.Errorf("get key %q: %w", key, sql.ErrNoRows)
	}
	return kv.Entry{Key: key, Value: raw, CreatedAt: time.Now(), UpdatedAt: time.Now()}, nil
}

func (m *memKV) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memKV) Has(_ context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func (m *memKV) ListKeys(_ context.Context) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

var _ kv.KV = (*memKV)(nil)

func TestScoped_PrefixesKeys(t *testing.T) {
	ctx := context.Background()
	store := newMemKV()
	scoped := kv.Scoped[string](store, "ui")

	require.NoError(t, scoped.Set(ctx, "theme", "gruvbox"))

	// The underlying store sees the namespaced key.
	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ui:theme"}, keys)

	got, err := scoped.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "gruvbox", got)
}

func TestScoped_NamespacesDoNotCollide(t *testing.T) {
	ctx := context.Background()
	store := newMemKV()

	first := kv.Scoped[int](store, "alpha")
	second := kv.Scoped[int](store, "beta")

	require.NoError(t, first.Set(ctx, "n", 1))
	require.NoError(t, second.Set(ctx, "n", 2))

	got, err := first.Get(ctx, "n")
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = second.Get(ctx, "n")
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestScoped_StructValues(t *testing.T) {
	ctx := context.Background()
	store := newMemKV()

	type prefs struct {
		Theme    string `json:"theme"`
		Selected string `json:"selected"`
	}

	scoped := kv.Scoped[prefs](store, "tui")
	want := prefs{Theme: "tokyo-night", Selected: "before-start"}
	require.NoError(t, scoped.Set(ctx, "prefs", want))

	got, err := scoped.Get(ctx, "prefs")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestScoped_DeleteAndHas(t *testing.T) {
	ctx := context.Background()
	store := newMemKV()
	scoped := kv.Scoped[string](store, "ui")

	require.NoError(t, scoped.Set(ctx, "k", "v"))

	has, err := scoped.Has(ctx, "k")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, scoped.Delete(ctx, "k"))

	has, err = scoped.Has(ctx, "k")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestScoped_GetMissing(t *testing.T) {
	ctx := context.Background()
	scoped := kv.Scoped[string](newMemKV(), "ui")

	_, err := scoped.Get(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
