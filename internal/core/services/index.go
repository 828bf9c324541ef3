package services

import (
	"sync"

	"github.com/custodia-labs/repolens/internal/core/domain"
)

// Index is the session-scoped resource locator index. It maps a
// category-tagged identifier to the locator needed to redeem it for
// byte content later in the same session. It grows monotonically and
// is discarded with the session; there is no eviction and no
// cross-session sharing.
type Index struct {
	mu      sync.RWMutex
	entries map[string]domain.IndexEntry
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]domain.IndexEntry)}
}

// Put inserts or overwrites an entry. Overwrites only occur when the
// upstream content hash repeats, which implies identical content.
func (i *Index) Put(id string, entry domain.IndexEntry) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries[id] = entry
}

// Get retrieves an entry by identifier.
func (i *Index) Get(id string) (domain.IndexEntry, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	entry, ok := i.entries[id]
	return entry, ok
}

// Len returns the number of recorded entries.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}
