// Package persist decides which recurring patterns are worth keeping and
// hands them to a blob store.
package persist

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultThreshold is the accumulated count a pattern must exceed to be saved.
const DefaultThreshold = 10

// Selection is a pattern whose accumulated count crossed the threshold.
type Selection struct {
	ID    int
	Count int
}

// Label returns the pattern label, e.g. "pattern_3".
func (s Selection) Label() string { return Label(s.ID) }

// Key returns the object key, e.g. "pattern_3.npy".
func (s Selection) Key() string { return Key(s.ID) }

// Label formats the label for a cluster id.
func Label(id int) string { return fmt.Sprintf("pattern_%d", id) }

// Key formats the object key for a cluster id.
func Key(id int) string { return Label(id) + ".npy" }

// Policy accumulates per-label counts across ticks and reports each label
// once when its total exceeds the threshold. It performs no I/O.
type Policy struct {
	mu        sync.Mutex
	threshold int
	totals    map[int]int
	saved     map[int]bool
}

// NewPolicy returns a Policy with the given threshold. Negative thresholds
// fall back to DefaultThreshold.
func NewPolicy(threshold int) *Policy {
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	return &Policy{
		threshold: threshold,
		totals:    make(map[int]int),
		saved:     make(map[int]bool),
	}
}

// Threshold returns the configured threshold.
func (p *Policy) Threshold() int { return p.threshold }

// Select adds counts to the running totals and returns, sorted by id, every
// label above the threshold that has not been marked saved.
func (p *Policy) Select(counts map[int]int) []Selection {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, n := range counts {
		if n > 0 {
			p.totals[id] += n
		}
	}
	var out []Selection
	for id, total := range p.totals {
		if total > p.threshold && !p.saved[id] {
			out = append(out, Selection{ID: id, Count: total})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MarkSaved records that id has been persisted. It will not be selected again.
func (p *Policy) MarkSaved(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saved[id] = true
}

// Saved reports whether id has been persisted.
func (p *Policy) Saved(id int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saved[id]
}

// Total returns the accumulated count for id.
func (p *Policy) Total(id int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totals[id]
}
