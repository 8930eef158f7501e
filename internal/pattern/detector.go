// Package pattern finds recurring shapes on a board snapshot.
//
// Extraction splits the board into 8-connected groups. Clustering groups the
// descriptors of those groups by density and gives each cluster a label that
// stays the same from one generation to the next: the label is the id the
// Registry assigned to the cluster's most frequent canonical shape (ties go to
// the smaller key).
package pattern

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"gol-miner/internal/core"
)

// Config holds the clustering thresholds.
type Config struct {
	Eps        float64
	MinSamples int
	// MaxCells skips groups larger than this many cells. Zero keeps all.
	MaxCells int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{Eps: 5, MinSamples: 3, MaxCells: 64}
}

// Registry hands out stable integer ids for canonical shape keys.
type Registry struct {
	mu  sync.Mutex
	ids map[string]int
	// keys[id] is the shape registered under id.
	keys []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]int)}
}

// ID returns the id for key, assigning the next free id on first sight.
func (r *Registry) ID(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[key]; ok {
		return id
	}
	id := len(r.keys)
	r.ids[key] = id
	r.keys = append(r.keys, key)
	return id
}

// Key returns the shape registered under id.
func (r *Registry) Key(id int) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id < 0 || id >= len(r.keys) {
		return "", false
	}
	return r.keys[id], true
}

// Len returns the number of registered shapes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}

// Result is the outcome of analyzing one snapshot.
type Result struct {
	Occurrences []Occurrence
	// Counts maps a stable label to the occurrences assigned to it.
	Counts map[int]int
}

// Labels returns the labels of r in ascending order.
func (r Result) Labels() []int {
	out := make([]int, 0, len(r.Counts))
	for l := range r.Counts {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

// Detector extracts and clusters shapes.
type Detector struct {
	cfg       Config
	clusterer Clusterer
	registry  *Registry
	log       zerolog.Logger
}

// NewDetector constructs a Detector. A nil clusterer selects DBSCAN and a nil
// registry starts a fresh one.
func NewDetector(cfg Config, clusterer Clusterer, registry *Registry, log zerolog.Logger) *Detector {
	if clusterer == nil {
		clusterer = DBSCAN{}
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &Detector{
		cfg:       cfg,
		clusterer: clusterer,
		registry:  registry,
		log:       log.With().Str("component", "pattern").Logger(),
	}
}

// Registry exposes the shape registry.
func (d *Detector) Registry() *Registry { return d.registry }

// Extract returns the groups found on g.
func (d *Detector) Extract(g *core.DenseGrid) []Occurrence {
	return Extract(g, d.cfg.MaxCells)
}

// Cluster counts occurrences per stable label. Noise is dropped. An empty
// input yields an empty map.
func (d *Detector) Cluster(occ []Occurrence) (map[int]int, error) {
	counts := make(map[int]int)
	if len(occ) == 0 {
		return counts, nil
	}

	points := make([][]float64, len(occ))
	for i, o := range occ {
		points[i] = o.Descriptor
	}
	labels, err := d.clusterer.Cluster(points, d.cfg.Eps, d.cfg.MinSamples)
	if err != nil {
		return counts, err
	}
	if len(labels) != len(occ) {
		return counts, fmt.Errorf("clusterer returned %d labels for %d occurrences", len(labels), len(occ))
	}

	// per raw label: how often each shape key occurs
	shapes := make(map[int]map[string]int)
	for i, l := range labels {
		if l == Noise {
			continue
		}
		if shapes[l] == nil {
			shapes[l] = make(map[string]int)
		}
		shapes[l][occ[i].Key]++
	}

	stable := make(map[int]int, len(shapes))
	dominant := make(map[int]string, len(shapes))
	for l, keys := range shapes {
		best, bestN := "", 0
		for k, n := range keys {
			if n > bestN || (n == bestN && k < best) {
				best, bestN = k, n
			}
		}
		dominant[l] = best
	}
	// assign ids in label order so first sightings are numbered deterministically
	raw := make([]int, 0, len(dominant))
	for l := range dominant {
		raw = append(raw, l)
	}
	sort.Ints(raw)
	for _, l := range raw {
		stable[l] = d.registry.ID(dominant[l])
	}

	for _, l := range labels {
		if l == Noise {
			continue
		}
		counts[stable[l]]++
	}
	return counts, nil
}

// Detect runs extraction and clustering on g.
func (d *Detector) Detect(g *core.DenseGrid) Result {
	occ := d.Extract(g)
	counts, err := d.Cluster(occ)
	if err != nil {
		// a failed clustering only costs this snapshot its counts
		d.log.Warn().Err(err).Int("occurrences", len(occ)).Msg("clustering failed")
		counts = map[int]int{}
	}
	d.log.Debug().
		Int("occurrences", len(occ)).
		Int("clusters", len(counts)).
		Int("shapes", d.registry.Len()).
		Msg("snapshot analyzed")
	return Result{Occurrences: occ, Counts: counts}
}
