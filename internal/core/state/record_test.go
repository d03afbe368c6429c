package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharo-jef/checklist-sub001/internal/core/status"
)

func TestItemStates_GetDefaultsToUnchecked(t *testing.T) {
	var nilStates ItemStates
	assert.Equal(t, status.StatusUnchecked, nilStates.Get("a", "l", "i"))

	states := ItemStates{}
	states.Set("a", "l", "i1", status.StatusChecked)

	assert.Equal(t, status.StatusChecked, states.Get("a", "l", "i1"))
	assert.Equal(t, status.StatusUnchecked, states.Get("a", "l", "i2"))
	assert.Equal(t, status.StatusUnchecked, states.Get("a", "other", "i1"))
	assert.Equal(t, status.StatusUnchecked, states.Get("other", "l", "i1"))
}

func TestItemStates_ClearChecklist(t *testing.T) {
	states := ItemStates{}
	states.Set("a", "x", "i1", status.StatusChecked)
	states.Set("a", "y", "i1", status.StatusOverridden)

	states.ClearChecklist("a", "x")

	assert.Equal(t, status.StatusUnchecked, states.Get("a", "x", "i1"))
	assert.Equal(t, status.StatusOverridden, states.Get("a", "y", "i1"))

	// Clearing the last checklist prunes the category entry too.
	states.ClearChecklist("a", "y")
	assert.Empty(t, states)

	// Clearing something that was never set is a no-op.
	states.ClearChecklist("missing", "x")
	assert.Empty(t, states)
}

func TestItemStates_ClearCategories(t *testing.T) {
	states := ItemStates{}
	states.Set("a", "l", "i1", status.StatusChecked)
	states.Set("b", "l", "i1", status.StatusChecked)
	states.Set("c", "l", "i1", status.StatusChecked)

	states.ClearCategories([]string{"a", "c", "missing"})

	assert.Len(t, states, 1)
	assert.Equal(t, status.StatusChecked, states.Get("b", "l", "i1"))
}

func TestItemStates_CloneIsDeep(t *testing.T) {
	states := ItemStates{}
	states.Set("a", "l", "i1", status.StatusChecked)

	clone := states.Clone()
	clone.Set("a", "l", "i1", status.StatusOverridden)
	clone.Set("b", "l", "i1", status.StatusChecked)

	assert.Equal(t, status.StatusChecked, states.Get("a", "l", "i1"))
	assert.Equal(t, status.StatusUnchecked, states.Get("b", "l", "i1"))

	var nilStates ItemStates
	assert.Nil(t, nilStates.Clone())
}

func TestItemStates_Normalize(t *testing.T) {
	states := ItemStates{}
	states.Set("a", "l", "i1", status.StatusChecked)
	states.Set("a", "l", "i2", status.StatusUnchecked)
	states.Set("b", "l", "i1", status.StatusUnchecked)

	normalized := states.Normalize()

	want := ItemStates{}
	want.Set("a", "l", "i1", status.StatusChecked)
	assert.Equal(t, want, normalized)
}

func TestItemStates_Equal(t *testing.T) {
	sparse := ItemStates{}
	sparse.Set("a", "l", "i1", status.StatusChecked)

	explicit := ItemStates{}
	explicit.Set("a", "l", "i1", status.StatusChecked)
	explicit.Set("a", "l", "i2", status.StatusUnchecked)
	explicit.Set("b", "l", "i1", status.StatusUnchecked)

	assert.True(t, sparse.Equal(explicit))
	assert.True(t, explicit.Equal(sparse))
	assert.True(t, ItemStates{}.Equal(nil))

	different := ItemStates{}
	different.Set("a", "l", "i1", status.StatusOverridden)
	assert.False(t, sparse.Equal(different))
}

func TestItemStates_Len(t *testing.T) {
	states := ItemStates{}
	assert.Equal(t, 0, states.Len())

	states.Set("a", "x", "i1", status.StatusChecked)
	states.Set("a", "x", "i2", status.StatusChecked)
	states.Set("a", "y", "i1", status.StatusOverridden)
	states.Set("b", "l", "i1", status.StatusCheckedOverridden)
	assert.Equal(t, 4, states.Len())
}

func TestLegacyRecord_Migrate(t *testing.T) {
	legacy := legacyRecord{
		Version: LegacySchemaVersion,
		ChecklistStates: map[string]map[string]map[string]bool{
			"a": {"l": {
				"checked-only": true,
				"both":         true,
				"neither":      false,
			}},
		},
		OverriddenStates: map[string]map[string]map[string]bool{
			"a": {"l": {
				"overridden-only": true,
				"both":            true,
			}},
		},
	}

	states := legacy.migrate()

	assert.Equal(t, status.StatusChecked, states.Get("a", "l", "checked-only"))
	assert.Equal(t, status.StatusOverridden, states.Get("a", "l", "overridden-only"))
	// The old schema cannot distinguish checked-overridden, so both flags
	// collapse to overridden.
	assert.Equal(t, status.StatusOverridden, states.Get("a", "l", "both"))
	assert.Equal(t, status.StatusUnchecked, states.Get("a", "l", "neither"))

	// False flags produce no entry at all.
	_, hasNeither := states["a"]["l"]["neither"]
	assert.False(t, hasNeither)
}

func TestLegacyRecord_MigrateDisjointMaps(t *testing.T) {
	// Categories present in only one of the two maps must still migrate.
	legacy := legacyRecord{
		Version: LegacySchemaVersion,
		ChecklistStates: map[string]map[string]map[string]bool{
			"checked-cat": {"l": {"i1": true}},
		},
		OverriddenStates: map[string]map[string]map[string]bool{
			"overridden-cat": {"l": {"i1": true}},
		},
	}

	states := legacy.migrate()

	assert.Equal(t, status.StatusChecked, states.Get("checked-cat", "l", "i1"))
	assert.Equal(t, status.StatusOverridden, states.Get("overridden-cat", "l", "i1"))
	assert.Equal(t, 2, states.Len())
}

func TestLegacyRecord_MigrateEmpty(t *testing.T) {
	states := legacyRecord{Version: LegacySchemaVersion}.migrate()
	assert.NotNil(t, states)
	assert.Empty(t, states)
}

func TestDecodeRecord_CurrentSchema(t *testing.T) {
	raw := []byte(`{
		"version": "2",
		"lastUpdated": 1700000000000,
		"itemStates": {"a": {"l": {"i1": "checked", "i2": "checked-overridden"}}}
	}`)

	rec, err := DecodeRecord(raw)
	require.NoError(t, err)

	assert.Equal(t, SchemaVersion, rec.Version)
	assert.Equal(t, int64(1700000000000), rec.LastUpdated)
	assert.Equal(t, status.StatusChecked, rec.ItemStates.Get("a", "l", "i1"))
	assert.Equal(t, status.StatusCheckedOverridden, rec.ItemStates.Get("a", "l", "i2"))
}

func TestDecodeRecord_MissingStatesBecomesEmpty(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"version": "2", "lastUpdated": 1}`))
	require.NoError(t, err)
	assert.NotNil(t, rec.ItemStates)
	assert.Equal(t, 0, rec.ItemStates.Len())
}

func TestDecodeRecord_LegacySchema(t *testing.T) {
	raw := []byte(`{
		"version": "1",
		"checklistStates": {"a": {"l": {"i1": true}}},
		"overriddenStates": {"a": {"l": {"i2": true}}}
	}`)

	rec, err := DecodeRecord(raw)
	require.NoError(t, err)

	assert.Equal(t, SchemaVersion, rec.Version)
	assert.NotZero(t, rec.LastUpdated)
	assert.Equal(t, status.StatusChecked, rec.ItemStates.Get("a", "l", "i1"))
	assert.Equal(t, status.StatusOverridden, rec.ItemStates.Get("a", "l", "i2"))
}

func TestDecodeRecord_Rejects(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"garbage", `not json`},
		{"unknown version", `{"version": "99"}`},
		{"invalid status", `{"version": "2", "itemStates": {"a": {"l": {"i1": "banana"}}}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeRecord([]byte(tc.raw))
			require.Error(t, err)
		})
	}
}
