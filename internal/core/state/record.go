package state

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/sharo-jef/checklist-sub001/internal/core/status"
)

const (
	// SchemaVersion is the version stamp written on every record.
	SchemaVersion = "2"

	// LegacySchemaVersion is the only historical schema the store can still
	// migrate. Anything else is treated as corrupt.
	LegacySchemaVersion = "1"
)

// ItemStates maps category ID to checklist ID to item ID to status. It is a
// sparse overlay over the checklist content: a missing key at any level reads
// as unchecked, and keys with no matching content definition are tolerated.
type ItemStates map[string]map[string]map[string]status.Status

// Get returns the stored status for an item, defaulting to unchecked when any
// level of the key path is absent. Safe on a nil map.
func (s ItemStates) Get(categoryID, checklistID, itemID string) status.Status {
	st, ok := s[categoryID][checklistID][itemID]
	if !ok {
		return status.StatusUnchecked
	}
	return st
}

// Set records a status for an item, allocating intermediate maps as needed.
// The receiver must be non-nil.
func (s ItemStates) Set(categoryID, checklistID, itemID string, st status.Status) {
	checklists, ok := s[categoryID]
	if !ok {
		checklists = map[string]map[string]status.Status{}
		s[categoryID] = checklists
	}
	items, ok := checklists[checklistID]
	if !ok {
		items = map[string]status.Status{}
		checklists[checklistID] = items
	}
	items[itemID] = st
}

// ClearChecklist removes every stored status under one checklist, pruning the
// category entry if nothing else remains in it.
func (s ItemStates) ClearChecklist(categoryID, checklistID string) {
	checklists, ok := s[categoryID]
	if !ok {
		return
	}
	delete(checklists, checklistID)
	if len(checklists) == 0 {
		delete(s, categoryID)
	}
}

// ClearCategories removes every stored status under each named category.
func (s ItemStates) ClearCategories(categoryIDs []string) {
	for _, id := range categoryIDs {
		delete(s, id)
	}
}

// Clone returns a deep copy. Like maps.Clone, a nil receiver yields nil.
func (s ItemStates) Clone() ItemStates {
	if s == nil {
		return nil
	}
	out := make(ItemStates, len(s))
	for categoryID, checklists := range s {
		outChecklists := make(map[string]map[string]status.Status, len(checklists))
		for checklistID, items := range checklists {
			outChecklists[checklistID] = maps.Clone(items)
		}
		out[categoryID] = outChecklists
	}
	return out
}

// Normalize returns a copy with explicit unchecked entries and empty
// intermediate maps removed. Two maps that normalize equal describe the same
// item statuses.
func (s ItemStates) Normalize() ItemStates {
	out := ItemStates{}
	for categoryID, checklists := range s {
		for checklistID, items := range checklists {
			for itemID, st := range items {
				if st == status.StatusUnchecked {
					continue
				}
				out.Set(categoryID, checklistID, itemID, st)
			}
		}
	}
	return out
}

// Equal reports whether two maps describe the same item statuses, treating an
// absent key and an explicit unchecked entry as equivalent.
func (s ItemStates) Equal(other ItemStates) bool {
	a, b := s.Normalize(), other.Normalize()
	if len(a) != len(b) {
		return false
	}
	for categoryID, checklists := range a {
		otherChecklists, ok := b[categoryID]
		if !ok || len(checklists) != len(otherChecklists) {
			return false
		}
		for checklistID, items := range checklists {
			if !maps.Equal(items, otherChecklists[checklistID]) {
				return false
			}
		}
	}
	return true
}

// Len returns the number of explicitly stored item statuses.
func (s ItemStates) Len() int {
	n := 0
	for _, checklists := range s {
		for _, items := range checklists {
			n += len(items)
		}
	}
	return n
}

// Record is the root persisted object. It is replaced wholesale on every
// write; nothing ever patches it in place.
type Record struct {
	Version     string     `json:"version"`
	LastUpdated int64      `json:"lastUpdated"`
	ItemStates  ItemStates `json:"itemStates"`
}

func newRecord(states ItemStates) Record {
	return Record{
		Version:     SchemaVersion,
		LastUpdated: time.Now().UnixMilli(),
		ItemStates:  states,
	}
}

// DecodeRecord parses raw bytes as a state record, accepting the current and
// the legacy schema. Unlike the store's load path it fails closed: callers
// importing external data want errors, not a silent fresh start.
func DecodeRecord(raw []byte) (Record, error) {
	var probe struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Record{}, fmt.Errorf("parse record: %w", err)
	}

	switch probe.Version {
	case SchemaVersion:
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return Record{}, fmt.Errorf("parse record: %w", err)
		}
		if rec.ItemStates == nil {
			rec.ItemStates = ItemStates{}
		}
		for categoryID, checklists := range rec.ItemStates {
			for checklistID, items := range checklists {
				for itemID, st := range items {
					if !st.IsValid() {
						return Record{}, fmt.Errorf("invalid status %q for %s/%s/%s", st, categoryID, checklistID, itemID)
					}
				}
			}
		}
		return rec, nil

	case LegacySchemaVersion:
		var legacy legacyRecord
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return Record{}, fmt.Errorf("parse legacy record: %w", err)
		}
		return newRecord(legacy.migrate()), nil

	default:
		return Record{}, fmt.Errorf("unsupported record version %q", probe.Version)
	}
}

// legacyRecord is the version "1" schema, which tracked completion and
// override as two separate boolean maps per item.
type legacyRecord struct {
	Version          string                                `json:"version"`
	ChecklistStates  map[string]map[string]map[string]bool `json:"checklistStates"`
	OverriddenStates map[string]map[string]map[string]bool `json:"overriddenStates"`
}

// migrate collapses the two legacy boolean maps into the four-valued status
// map. An item with both flags set becomes overridden, not
// checked-overridden: the old schema never recorded whether an overridden
// item had also been checked, so that distinction cannot be recovered.
// Items with neither flag set are omitted, since absent reads as unchecked.
func (r legacyRecord) migrate() ItemStates {
	states := ItemStates{}
	for _, categoryID := range unionKeys(r.ChecklistStates, r.OverriddenStates) {
		checked := r.ChecklistStates[categoryID]
		overridden := r.OverriddenStates[categoryID]
		for _, checklistID := range unionKeys(checked, overridden) {
			for _, itemID := range unionKeys(checked[checklistID], overridden[checklistID]) {
				switch {
				case overridden[checklistID][itemID]:
					states.Set(categoryID, checklistID, itemID, status.StatusOverridden)
				case checked[checklistID][itemID]:
					states.Set(categoryID, checklistID, itemID, status.StatusChecked)
				}
			}
		}
	}
	return states
}

// unionKeys merges both maps' key sets. Indexing a nil map is safe, so the
// migration can walk levels that exist in only one of the two legacy maps.
func unionKeys[V any](a, b map[string]V) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	return keys
}
