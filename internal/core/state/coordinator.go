package state

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sharo-jef/checklist-sub001/internal/core/logging"
	"github.com/sharo-jef/checklist-sub001/internal/core/status"
)

// Coordinator holds the authoritative in-memory statuses for the running
// session and keeps them in step with the Store on every mutation.
//
// The cache starts empty and stays empty until Hydrate runs. The first UI
// frame must look identical whether or not persisted data exists, so
// construction never reads the store; callers schedule Hydrate after that
// first frame. Reads before hydration report unchecked for everything.
type Coordinator struct {
	store *Store
	log   zerolog.Logger

	mu       sync.RWMutex
	states   ItemStates
	hydrated bool

	hydrateOnce sync.Once
}

// NewCoordinator creates a Coordinator with an empty cache.
func NewCoordinator(store *Store) *Coordinator {
	return &Coordinator{
		store:  store,
		log:    logging.Component("state.coordinator"),
		states: ItemStates{},
	}
}

// Hydrate populates the cache from the store. It runs at most once; later
// calls return immediately.
func (c *Coordinator) Hydrate(ctx context.Context) {
	c.hydrateOnce.Do(func() {
		rec, ok := c.store.Load(ctx)
		states := rec.ItemStates
		if !ok || states == nil {
			states = ItemStates{}
		}

		c.mu.Lock()
		c.states = states
		c.hydrated = true
		c.mu.Unlock()

		c.log.Debug().Int("items", states.Len()).Msg("hydrated item states")
	})
}

// Hydrated reports whether the deferred hydration step has completed.
func (c *Coordinator) Hydrated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hydrated
}

// Status reads an item's status from the cache only, never from the store.
// Missing entries, including everything before hydration, read as unchecked.
func (c *Coordinator) Status(categoryID, checklistID, itemID string) status.Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.states.Get(categoryID, checklistID, itemID)
}

// ItemComplete reports whether the item's cached status counts as complete.
func (c *Coordinator) ItemComplete(categoryID, checklistID, itemID string) bool {
	return c.Status(categoryID, checklistID, itemID).IsComplete()
}

// ItemOverridden reports whether the item's cached status carries the
// emergency bypass.
func (c *Coordinator) ItemOverridden(categoryID, checklistID, itemID string) bool {
	return c.Status(categoryID, checklistID, itemID).IsOverridden()
}

// UpdateStatus writes the status through to the store and, on success,
// applies the same change to the cache. A failed write leaves the cache
// untouched so the session keeps serving the last-known-good state.
func (c *Coordinator) UpdateStatus(ctx context.Context, categoryID, checklistID, itemID string, st status.Status) bool {
	if !c.store.SetStatus(ctx, categoryID, checklistID, itemID, st) {
		return false
	}

	c.mu.Lock()
	c.states.Set(categoryID, checklistID, itemID, st)
	c.mu.Unlock()
	return true
}

// Apply runs the transition table against the item's cached status and writes
// the result through. It returns the status now in effect: the next status on
// success, the unchanged current one on a failed write.
func (c *Coordinator) Apply(ctx context.Context, categoryID, checklistID, itemID string, action status.Action) (status.Status, bool) {
	current := c.Status(categoryID, checklistID, itemID)
	next := status.Transition(current, action)
	if !c.UpdateStatus(ctx, categoryID, checklistID, itemID, next) {
		return current, false
	}
	return next, true
}

// ResetChecklist clears one checklist in the store, then reloads the cache
// from what is actually persisted.
func (c *Coordinator) ResetChecklist(ctx context.Context, categoryID, checklistID string) bool {
	if !c.store.ResetOne(ctx, categoryID, checklistID) {
		return false
	}
	c.reload(ctx)
	return true
}

// ResetCategories clears every named category in one write, then reloads the
// cache. An empty input succeeds without touching anything.
func (c *Coordinator) ResetCategories(ctx context.Context, categoryIDs []string) bool {
	if !c.store.ResetMany(ctx, categoryIDs) {
		return false
	}
	if len(categoryIDs) == 0 {
		return true
	}
	c.reload(ctx)
	return true
}

// ResetAll deletes the entire stored record, then reloads the cache.
func (c *Coordinator) ResetAll(ctx context.Context) bool {
	if !c.store.ResetAll(ctx) {
		return false
	}
	c.reload(ctx)
	return true
}

// reload replaces the cache with the store's current contents rather than
// assuming what a mutation left behind.
func (c *Coordinator) reload(ctx context.Context) {
	rec, ok := c.store.Load(ctx)
	states := rec.ItemStates
	if !ok || states == nil {
		states = ItemStates{}
	}

	c.mu.Lock()
	c.states = states
	c.mu.Unlock()
}
