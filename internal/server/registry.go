package server

import (
	"sort"
	"sync"
	"time"

	accountdomain "github.com/smallbiznis/teleforge/internal/account/domain"
	"github.com/smallbiznis/teleforge/internal/config"
	"github.com/smallbiznis/teleforge/internal/export"
)

// DatasetEntry is one generated dataset held in memory for download. The
// bundle is immutable once stored.
type DatasetEntry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Accounts []accountdomain.Account `json:"-"`
	Bundle   export.Bundle           `json:"-"`
	Failed   map[int64]string        `json:"-"`

	Config config.GeneratorConfig `json:"-"`
}

// registry is the in-memory dataset store behind the API. Entries are keyed
// by ULID so lexical order is creation order.
type registry struct {
	mu      sync.RWMutex
	entries map[string]*DatasetEntry
}

func newRegistry() *registry {
	return &registry{entries: make(map[string]*DatasetEntry)}
}

func (r *registry) Put(e *DatasetEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.ID] = e
}

func (r *registry) Get(id string) (*DatasetEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// List returns up to limit+1 entries after the given id so the caller can
// detect whether more pages remain.
func (r *registry) List(afterID string, limit int) []*DatasetEntry {
	r.mu.RLock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		if afterID != "" && id <= afterID {
			continue
		}
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	if len(ids) > limit+1 {
		ids = ids[:limit+1]
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*DatasetEntry, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.entries[id]; ok {
			out = append(out, e)
		}
	}
	return out
}
