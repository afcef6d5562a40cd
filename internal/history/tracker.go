// Package history keeps the bounded, deduplicated list of recent searches.
package history

import (
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// Capacity is the maximum number of entries kept.
const Capacity = 5

// Tracker records search terms most-recent-first. Re-recording a term moves
// it to the front instead of duplicating it; the oldest entry is evicted once
// the capacity is exceeded. State is process-local and not persisted.
type Tracker struct {
	recent *lru.Cache
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	// lru.New only fails on a non-positive size.
	cache, err := lru.New(Capacity)
	if err != nil {
		panic(err)
	}
	return &Tracker{recent: cache}
}

// Record adds a search term, promoting it if already present. Blank terms
// are ignored.
func (t *Tracker) Record(city string) {
	city = strings.TrimSpace(city)
	if city == "" {
		return
	}
	t.recent.Add(city, struct{}{})
}

// List returns the recorded terms, most recent first.
func (t *Tracker) List() []string {
	keys := t.recent.Keys() // oldest to newest
	out := make([]string, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		out = append(out, keys[i].(string))
	}
	return out
}

// Len returns the number of recorded terms.
func (t *Tracker) Len() int {
	return t.recent.Len()
}
