package kmeans

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/yyyoichi/kmeans/internal/kmeans"
	"github.com/yyyoichi/kmeans/labels"
)

var (
	ErrInvalidClusterCount = errors.New("incorrect number of clusters")
	ErrInvalidMaxIter      = errors.New("incorrect maximum iteration")
	ErrInvalidInput        = errors.New("invalid input points")
)

const (
	DefaultMaxIter          = 400
	DefaultIterationCeiling = 800
	DefaultEpsilon          = 0.001
)

// State is the phase of a clustering run.
type State int

const (
	StateInitialized State = iota
	StateIterating
	// StateConverged means every centroid moved less than epsilon in the last iteration.
	StateConverged
	// StateExhausted means the run stopped after max_iter iterations without converging.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is the outcome of a clustering run.
type Result struct {
	// Centroids holds the K final centroids in cluster index order.
	Centroids [][]float64
	// Labels holds, for each input point, the cluster it was assigned to in
	// the last iteration.
	Labels     *labels.Labels
	Iterations int
	State      State
}

// Iteration is a snapshot passed to an observer after each iteration.
type Iteration struct {
	Index     int
	Centroids [][]float64
	Labels    []int
	MaxShift  float64
}

// Cluster partitions points into k clusters with the specified options.
// This is a convenience function that creates a KMeans instance and calls its Fit method.
func Cluster(points [][]float64, k int, opts ...Option) (*Result, error) {
	km, err := New(k, opts...)
	if err != nil {
		return nil, err
	}
	return km.Fit(points)
}

type KMeans struct {
	k                int
	maxIter          int
	iterationCeiling int
	epsilon          float64
	logger           *slog.Logger
	observer         func(Iteration)
}

// New initializes a clustering driver for k clusters.
// max_iter, epsilon and the iteration ceiling can be optionally specified.
// For default values, refer to the init function.
//
// New returns ErrInvalidClusterCount when k <= 1 and ErrInvalidMaxIter when
// max_iter is outside (1, ceiling). k is checked before max_iter.
func New(k int, opts ...Option) (*KMeans, error) {
	km := &KMeans{k: k}
	if err := km.init(opts...); err != nil {
		return nil, err
	}
	return km, nil
}

// Fit runs Lloyd's algorithm on points.
//
// Process:
//  1. Takes the first K points as initial centroids.
//  2. Assigns every point to its nearest centroid.
//  3. Moves each centroid to the mean of its points, or to points[0] if it has none.
//  4. Stops when every centroid moved less than epsilon or after max_iter iterations.
//
// Returns ErrInvalidClusterCount if K is not below the number of points and
// ErrInvalidInput if the points do not share a positive dimension.
func (km *KMeans) Fit(points [][]float64) (*Result, error) {
	if km.k >= len(points) {
		return nil, fmt.Errorf("%w: k=%d, n=%d", ErrInvalidClusterCount, km.k, len(points))
	}
	dim := len(points[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: empty point", ErrInvalidInput)
	}
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("%w: point %d has dimension %d, want %d", ErrInvalidInput, i, len(p), dim)
		}
	}

	log := km.logger.With("k", km.k, "n", len(points), "dim", dim)
	centroids := kmeans.Initialize(points, km.k)
	state := StateIterating

	var (
		part kmeans.Partition
		iter int
	)
	for iter = 1; ; iter++ {
		part = kmeans.Assign(centroids, points)
		next := kmeans.Update(part, points, dim)
		shift := kmeans.MaxShift(centroids, next)
		converged := kmeans.Converged(centroids, next, km.epsilon)
		centroids = next

		log.Debug("iteration", "iter", iter, "max_shift", shift)
		if km.observer != nil {
			km.observer(Iteration{
				Index:     iter,
				Centroids: centroids,
				Labels:    part.Labels,
				MaxShift:  shift,
			})
		}

		if converged {
			state = StateConverged
			break
		}
		if iter == km.maxIter {
			state = StateExhausted
			break
		}
	}
	lbl := labels.New(part.Labels, km.k)
	log.Info("clustering finished", "state", state, "iterations", iter, "cluster_sizes", lbl.Counts())

	return &Result{
		Centroids:  centroids,
		Labels:     lbl,
		Iterations: iter,
		State:      state,
	}, nil
}

func (km *KMeans) init(opts ...Option) error {
	km.maxIter = DefaultMaxIter
	km.iterationCeiling = DefaultIterationCeiling
	km.epsilon = DefaultEpsilon
	for _, opt := range opts {
		if err := opt(km); err != nil {
			return err
		}
	}
	if km.logger == nil {
		km.logger = slog.New(slog.DiscardHandler)
	}

	if km.k <= 1 {
		return fmt.Errorf("%w: k=%d", ErrInvalidClusterCount, km.k)
	}
	if km.maxIter <= 1 || km.maxIter >= km.iterationCeiling {
		return fmt.Errorf("%w: max_iter=%d, want 1 < max_iter < %d", ErrInvalidMaxIter, km.maxIter, km.iterationCeiling)
	}
	if !(km.epsilon > 0) || math.IsInf(km.epsilon, 1) {
		return fmt.Errorf("invalid epsilon %v: must be positive and finite", km.epsilon)
	}
	return nil
}
