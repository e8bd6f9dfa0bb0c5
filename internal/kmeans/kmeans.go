package kmeans

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Distance returns the Euclidean distance between a and b.
// Both vectors must have the same length.
func Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Initialize returns copies of the first k points, in input order.
func Initialize(points [][]float64, k int) [][]float64 {
	centroids := make([][]float64, k)
	for i := range k {
		centroids[i] = slices.Clone(points[i])
	}
	return centroids
}

// Partition is the result of one assignment step.
// Clusters[c] lists the indices of the points assigned to centroid c in input
// order, and Labels[i] is the centroid index of point i.
type Partition struct {
	Clusters [][]int
	Labels   []int
}

// Len returns the number of clusters.
func (p Partition) Len() int { return len(p.Clusters) }

// Assign builds a fresh partition of points by nearest centroid.
// On equal distances the lowest centroid index wins.
func Assign(centroids, points [][]float64) Partition {
	p := Partition{
		Clusters: make([][]int, len(centroids)),
		Labels:   make([]int, len(points)),
	}
	for i, point := range points {
		nearest := Nearest(centroids, point)
		p.Labels[i] = nearest
		p.Clusters[nearest] = append(p.Clusters[nearest], i)
	}
	return p
}

// Nearest returns the index of the centroid closest to point.
func Nearest(centroids [][]float64, point []float64) int {
	nearest := 0
	minDist := Distance(point, centroids[0])
	for c := 1; c < len(centroids); c++ {
		if d := Distance(point, centroids[c]); d < minDist {
			minDist = d
			nearest = c
		}
	}
	return nearest
}

// Update computes a new centroid for every cluster of p.
// A non-empty cluster moves to the mean of its members; an empty cluster is
// reset to a copy of points[0].
func Update(p Partition, points [][]float64, dim int) [][]float64 {
	centroids := make([][]float64, p.Len())
	store := NewMeanStore(dim)
	for c, members := range p.Clusters {
		store.Reset()
		for _, i := range members {
			store.Add(points[i])
		}
		if store.Count() == 0 {
			centroids[c] = slices.Clone(points[0])
			continue
		}
		centroids[c] = store.Mean()
	}
	return centroids
}

// Converged reports whether every centroid moved strictly less than epsilon
// between prev and next.
func Converged(prev, next [][]float64, epsilon float64) bool {
	for i := range prev {
		if Distance(prev[i], next[i]) >= epsilon {
			return false
		}
	}
	return true
}

// MaxShift returns the largest distance between corresponding centroids.
func MaxShift(prev, next [][]float64) float64 {
	var shift float64
	for i := range prev {
		shift = max(shift, Distance(prev[i], next[i]))
	}
	return shift
}
