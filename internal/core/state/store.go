// Package state owns the persisted completion state of checklist items: one
// versioned record under a single storage key, the migration path from the
// legacy two-map schema, and the in-memory session cache the UI reads from.
package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sharo-jef/checklist-sub001/internal/core/kv"
	"github.com/sharo-jef/checklist-sub001/internal/core/logging"
	"github.com/sharo-jef/checklist-sub001/internal/core/status"
)

// RecordKey is the storage key that owns the persisted record. No other
// component may write to it.
const RecordKey = "checklist:item-states"

// Store reads and writes the persisted completion record. Each operation is a
// single read or a single read-modify-write against RecordKey, and no failure
// escapes as an error: callers get a success boolean or an absent-capable
// result, with the cause logged here.
type Store struct {
	kv  kv.KV
	log zerolog.Logger

	mu      sync.Mutex
	current Record
	loaded  bool
}

// NewStore creates a Store over the given KV backend.
func NewStore(backend kv.KV) *Store {
	return &Store{
		kv:  backend,
		log: logging.Component("state.store"),
	}
}

// Partial is a partial update applied over the most recently loaded record. A
// nil ItemStates keeps the current map and only refreshes the version and
// timestamp stamps.
type Partial struct {
	ItemStates ItemStates
}

// Load reads the persisted record. The second return is false when no record
// exists, the stored bytes fail to parse, or the version is unrecognized; in
// every one of those cases the caller proceeds as if nothing was stored. A
// recognized legacy record is migrated and written back before returning, so
// migration runs at most once per stored record.
func (s *Store) Load(ctx context.Context) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// load requires s.mu.
func (s *Store) load(ctx context.Context) (Record, bool) {
	entry, err := s.kv.GetRaw(ctx, RecordKey)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Error().Err(err).Msg("failed to read state record")
		}
		s.current, s.loaded = Record{}, false
		return Record{}, false
	}

	var probe struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(entry.Value, &probe); err != nil {
		s.log.Error().Err(err).Msg("state record is not valid JSON")
		s.current, s.loaded = Record{}, false
		return Record{}, false
	}

	switch probe.Version {
	case SchemaVersion:
		var rec Record
		if err := json.Unmarshal(entry.Value, &rec); err != nil {
			s.log.Error().Err(err).Msg("state record failed to parse")
			s.current, s.loaded = Record{}, false
			return Record{}, false
		}
		s.sanitize(&rec)
		s.current, s.loaded = rec, true
		return s.snapshot(), true

	case LegacySchemaVersion:
		var legacy legacyRecord
		if err := json.Unmarshal(entry.Value, &legacy); err != nil {
			s.log.Error().Err(err).Msg("legacy state record failed to parse")
			s.current, s.loaded = Record{}, false
			return Record{}, false
		}
		rec := newRecord(legacy.migrate())
		if err := s.kv.Set(ctx, RecordKey, rec); err != nil {
			// Keep serving the migrated data; the rewrite happens naturally
			// on the next successful save.
			s.log.Error().Err(err).Msg("failed to write back migrated state record")
		} else {
			s.log.Info().Int("items", rec.ItemStates.Len()).Msg("migrated legacy state record")
		}
		s.current, s.loaded = rec, true
		return s.snapshot(), true

	default:
		s.log.Warn().Str("version", probe.Version).Msg("unrecognized state record version, starting fresh")
		s.current, s.loaded = Record{}, false
		return Record{}, false
	}
}

// sanitize drops any stored status outside the defined set and normalizes a
// missing itemStates field to an empty map. Absent reads as unchecked, so
// dropping a damaged entry is the same as resetting it.
func (s *Store) sanitize(rec *Record) {
	if rec.ItemStates == nil {
		rec.ItemStates = ItemStates{}
		return
	}
	for categoryID, checklists := range rec.ItemStates {
		for checklistID, items := range checklists {
			for itemID, st := range items {
				if st.IsValid() {
					continue
				}
				s.log.Warn().
					Str("category", categoryID).
					Str("checklist", checklistID).
					Str("item", itemID).
					Str("value", string(st)).
					Msg("dropping invalid item status")
				delete(items, itemID)
			}
			if len(items) == 0 {
				delete(checklists, checklistID)
			}
		}
		if len(checklists) == 0 {
			delete(rec.ItemStates, categoryID)
		}
	}
}

// snapshot requires s.mu. The returned record shares nothing with the
// retained copy, so callers can mutate it freely.
func (s *Store) snapshot() Record {
	rec := s.current
	rec.ItemStates = rec.ItemStates.Clone()
	return rec
}

// Save merges the partial update over the most recently loaded record, stamps
// the current schema version and a fresh timestamp, and replaces the stored
// record in a single write. On failure the retained record is untouched and
// Save returns false.
func (s *Store) Save(ctx context.Context, update Partial) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, update)
}

// save requires s.mu.
func (s *Store) save(ctx context.Context, update Partial) bool {
	states := update.ItemStates
	if states == nil {
		if s.loaded {
			states = s.current.ItemStates
		} else {
			states = ItemStates{}
		}
	}

	rec := newRecord(states)
	if err := s.kv.Set(ctx, RecordKey, rec); err != nil {
		s.log.Error().Err(err).Msg("failed to write state record")
		return false
	}

	rec.ItemStates = states.Clone()
	s.current, s.loaded = rec, true
	return true
}

// ResetOne clears every stored status under one checklist, leaving sibling
// checklists and categories untouched.
func (s *Store) ResetOne(ctx context.Context, categoryID, checklistID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _ := s.load(ctx)
	states := rec.ItemStates
	if states == nil {
		states = ItemStates{}
	}
	states.ClearChecklist(categoryID, checklistID)
	return s.save(ctx, Partial{ItemStates: states})
}

// ResetMany clears all stored status for every named category in a single
// write. An empty input returns success without touching the store at all.
func (s *Store) ResetMany(ctx context.Context, categoryIDs []string) bool {
	if len(categoryIDs) == 0 {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _ := s.load(ctx)
	states := rec.ItemStates
	if states == nil {
		states = ItemStates{}
	}
	states.ClearCategories(categoryIDs)
	return s.save(ctx, Partial{ItemStates: states})
}

// ResetAll deletes the stored record entirely.
func (s *Store) ResetAll(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, RecordKey); err != nil {
		s.log.Error().Err(err).Msg("failed to delete state record")
		return false
	}
	s.current, s.loaded = Record{}, false
	return true
}

// GetStatus reads a single item's persisted status, defaulting to unchecked
// when nothing is stored for it.
func (s *Store) GetStatus(ctx context.Context, categoryID, checklistID, itemID string) status.Status {
	rec, ok := s.Load(ctx)
	if !ok {
		return status.StatusUnchecked
	}
	return rec.ItemStates.Get(categoryID, checklistID, itemID)
}

// SetStatus stores a single item's status via one read-modify-write.
func (s *Store) SetStatus(ctx context.Context, categoryID, checklistID, itemID string, st status.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _ := s.load(ctx)
	states := rec.ItemStates
	if states == nil {
		states = ItemStates{}
	}
	states.Set(categoryID, checklistID, itemID, st)
	return s.save(ctx, Partial{ItemStates: states})
}
