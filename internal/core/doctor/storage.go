package doctor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/sharo-jef/checklist-sub001/internal/core/checklist"
	"github.com/sharo-jef/checklist-sub001/internal/core/kv"
	"github.com/sharo-jef/checklist-sub001/internal/core/state"
	"github.com/sharo-jef/checklist-sub001/internal/data/db"
)

// StorageCheck inspects the database file and the stored state record. With
// Fix set it also prunes state entries that no longer match any content.
type StorageCheck struct {
	DataDir string
	DB      *db.DB
	KV      kv.KV
	Library *checklist.Library
	Fix     bool
}

func (c *StorageCheck) Name() string { return "Storage" }

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	dbPath := filepath.Join(c.DataDir, db.DBFileName)
	if info, err := os.Stat(dbPath); err != nil {
		result.Items = append(result.Items, warn("database file", fmt.Sprintf("%s: %v", dbPath, err)))
	} else {
		result.Items = append(result.Items, pass("database file", fmt.Sprintf("%s (%d bytes)", dbPath, info.Size())))
	}

	if err := c.DB.Conn().PingContext(ctx); err != nil {
		result.Items = append(result.Items, fail("connection", err.Error()))
		return result
	}
	result.Items = append(result.Items, pass("connection", ""))

	result.Items = append(result.Items, c.recordItems(ctx)...)
	return result
}

func (c *StorageCheck) recordItems(ctx context.Context) []CheckItem {
	entry, err := c.KV.GetRaw(ctx, state.RecordKey)
	if errors.Is(err, sql.ErrNoRows) {
		return []CheckItem{pass("state record", "no saved state yet")}
	}
	if err != nil {
		return []CheckItem{fail("state record", err.Error())}
	}

	rec, err := state.DecodeRecord(entry.Value)
	if err != nil {
		// The store ignores records it cannot read, so this is a warning
		// rather than a failure: the app still starts, state starts fresh.
		return []CheckItem{warn("state record", fmt.Sprintf("%v (ignored at load)", err))}
	}

	items := []CheckItem{pass("state record", fmt.Sprintf("schema v%s, %d tracked items", state.SchemaVersion, rec.ItemStates.Len()))}

	orphans := findOrphans(rec.ItemStates, c.Library)
	switch {
	case len(orphans) == 0:
		items = append(items, pass("orphaned state", "none"))
	case c.Fix:
		if err := c.pruneOrphans(ctx, rec, orphans); err != nil {
			items = append(items, fail("orphaned state", fmt.Sprintf("prune failed: %v", err)))
		} else {
			items = append(items, pass("orphaned state", fmt.Sprintf("removed %d entries", len(orphans))))
		}
	default:
		detail := fmt.Sprintf("%d entries reference missing content (first: %s)", len(orphans), orphans[0])
		items = append(items, CheckItem{Label: "orphaned state", Status: StatusWarn, Detail: detail, Fixable: true})
	}

	return items
}

func (c *StorageCheck) pruneOrphans(ctx context.Context, rec state.Record, orphans []string) error {
	states := rec.ItemStates.Clone()
	for catID, checklists := range states {
		for clID, items := range checklists {
			for itemID := range items {
				if slices.Contains(orphans, catID+"/"+clID+"/"+itemID) {
					delete(items, itemID)
				}
			}
			if len(items) == 0 {
				delete(checklists, clID)
			}
		}
		if len(checklists) == 0 {
			delete(states, catID)
		}
	}

	rec.ItemStates = states
	rec.LastUpdated = time.Now().UnixMilli()
	return c.KV.Set(ctx, state.RecordKey, rec)
}

// findOrphans returns "category/checklist/item" paths stored in states that
// no longer resolve to an item in the library, sorted for stable output.
func findOrphans(states state.ItemStates, library *checklist.Library) []string {
	var orphans []string
	for catID, checklists := range states {
		for clID, items := range checklists {
			for itemID := range items {
				if _, ok := library.Item(catID, clID, itemID); !ok {
					orphans = append(orphans, catID+"/"+clID+"/"+itemID)
				}
			}
		}
	}
	slices.Sort(orphans)
	return orphans
}
