package pattern

import (
	"fmt"

	"github.com/mpraski/clusters"
)

// Noise labels a point that belongs to no cluster.
const Noise = -1

// Clusterer groups descriptor vectors. Implementations must return one label
// per point, Noise for unclustered points, and must be deterministic for a
// given input order with labels numbered 0..k-1 as clusters are discovered.
type Clusterer interface {
	Cluster(points [][]float64, eps float64, minSamples int) ([]int, error)
}

// DBSCAN clusters with the mpraski/clusters density-based estimator using
// Euclidean distance.
type DBSCAN struct {
	// Workers bounds the neighbor search goroutines. Zero means one, which
	// keeps discovery order, and therefore labels, reproducible.
	Workers int
}

// Cluster implements Clusterer.
func (d DBSCAN) Cluster(points [][]float64, eps float64, minSamples int) ([]int, error) {
	if eps <= 0 || minSamples < 1 {
		return nil, fmt.Errorf("dbscan: need eps > 0 and minSamples >= 1, got %g and %d", eps, minSamples)
	}
	if len(points) == 0 {
		return []int{}, nil
	}
	workers := min(max(d.Workers, 1), len(points))

	c, err := clusters.DBSCAN(minSamples, eps, workers, clusters.EuclideanDistance)
	if err != nil {
		return nil, fmt.Errorf("dbscan: %w", err)
	}
	if err := c.Learn(points); err != nil {
		return nil, fmt.Errorf("dbscan: %w", err)
	}
	return renumber(c.Guesses()), nil
}

// renumber maps the estimator's labels (positive ids, anything else noise)
// onto 0..k-1 in order of first appearance.
func renumber(guesses []int) []int {
	out := make([]int, len(guesses))
	ids := make(map[int]int)
	for i, g := range guesses {
		if g <= 0 {
			out[i] = Noise
			continue
		}
		id, ok := ids[g]
		if !ok {
			id = len(ids)
			ids[g] = id
		}
		out[i] = id
	}
	return out
}
