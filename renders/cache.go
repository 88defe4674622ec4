package renders

import (
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/reusee/taideck/deckjs"
)

// Outcome is a snapshot of one component's compile history: the latest
// attempt and the newest unit that compiled clean.
type Outcome struct {
	Source   string
	Current  *deckjs.Unit
	Err      error
	LastGood *deckjs.Unit
}

// Cache maps component ids to compile outcomes. An entry is only ever
// replaced, never deleted. A failed compile records its error and leaves
// the last good unit alone, which is what keeps a broken edit from
// flashing an error panel over a previously working component.
//
// A thumbnail and a canvas view of the same component may read the same
// entry concurrently, hence the lock.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	source   string
	current  *deckjs.Unit
	err      error
	lastGood *deckjs.Unit
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*cacheEntry),
	}
}

// StoreGood records a successful compile, swapping both the current unit
// and the known-good fallback.
func (c *Cache) StoreGood(id string, source string, unit *deckjs.Unit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := c.entry(id)
	entry.source = source
	entry.current = unit
	entry.err = nil
	entry.lastGood = unit
}

// StoreFailed records a failed compile. The known-good unit, if any,
// stays in place.
func (c *Cache) StoreFailed(id string, source string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := c.entry(id)
	entry.source = source
	entry.current = nil
	entry.err = err
}

func (c *Cache) entry(id string) *cacheEntry {
	entry, ok := c.entries[id]
	if !ok {
		entry = new(cacheEntry)
		c.entries[id] = entry
	}
	return entry
}

func (c *Cache) Get(id string) (Outcome, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[id]
	if !ok {
		return Outcome{}, false
	}
	return Outcome{
		Source:   entry.source,
		Current:  entry.current,
		Err:      entry.err,
		LastGood: entry.lastGood,
	}, true
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// IDs lists the component ids with a recorded outcome, sorted.
func (c *Cache) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := lo.Keys(c.entries)
	slices.Sort(ids)
	return ids
}
