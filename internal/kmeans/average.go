package kmeans

import "gonum.org/v1/gonum/floats"

// MeanStore accumulates the coordinate-wise sum of the points added to it.
type MeanStore struct {
	sum   []float64
	count int
}

func NewMeanStore(dim int) *MeanStore {
	return &MeanStore{sum: make([]float64, dim)}
}

func (s *MeanStore) Add(p []float64) {
	floats.Add(s.sum, p)
	s.count += 1
}

// Mean returns a new slice holding sum/count for each coordinate.
// The result is undefined for an empty store; check Count first.
func (s *MeanStore) Mean() []float64 {
	mean := make([]float64, len(s.sum))
	n := float64(s.count)
	for i, v := range s.sum {
		mean[i] = v / n
	}
	return mean
}

func (s *MeanStore) Count() int { return s.count }

func (s *MeanStore) Reset() {
	for i := range s.sum {
		s.sum[i] = 0
	}
	s.count = 0
}
