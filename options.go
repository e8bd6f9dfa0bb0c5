package kmeans

import "log/slog"

type Option func(*KMeans) error

// WithMaxIter sets the upper bound on the number of iterations.
// It must satisfy 1 < n < ceiling, see WithIterationCeiling. The default is 400.
func WithMaxIter(n int) Option {
	return func(km *KMeans) error {
		km.maxIter = n
		return nil
	}
}

// WithIterationCeiling sets the exclusive upper bound accepted for max_iter.
// The default is 800.
func WithIterationCeiling(n int) Option {
	return func(km *KMeans) error {
		km.iterationCeiling = n
		return nil
	}
}

// WithEpsilon sets the convergence threshold. A run converges once every
// centroid moved strictly less than eps in one iteration. The default is 0.001.
func WithEpsilon(eps float64) Option {
	return func(km *KMeans) error {
		km.epsilon = eps
		return nil
	}
}

// WithLogger sets the logger used for per-iteration debug output.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(km *KMeans) error {
		km.logger = logger
		return nil
	}
}

// WithObserver registers fn to be called after every iteration.
// The snapshot must not be modified.
func WithObserver(fn func(Iteration)) Option {
	return func(km *KMeans) error {
		km.observer = fn
		return nil
	}
}
