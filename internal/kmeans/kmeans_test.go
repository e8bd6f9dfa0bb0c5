package kmeans

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	test := []struct {
		a, b []float64
		exp  float64
	}{
		{a: []float64{0, 0}, b: []float64{3, 4}, exp: 5},
		{a: []float64{3, 4}, b: []float64{0, 0}, exp: 5},
		{a: []float64{1}, b: []float64{-2}, exp: 3},
		{a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, exp: 0},
		{a: []float64{1, 1, 1, 1}, b: []float64{0, 0, 0, 0}, exp: 2},
	}
	for _, tt := range test {
		assert.InDelta(t, tt.exp, Distance(tt.a, tt.b), 1e-12)
	}
}

func TestInitialize(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	centroids := Initialize(points, 2)
	assert.Equal(t, [][]float64{{0, 0}, {1, 1}}, centroids)

	// centroids must not alias the input points
	centroids[0][0] = 99
	assert.Equal(t, 0., points[0][0])
}

func TestAssign(t *testing.T) {
	t.Run("nearest", func(t *testing.T) {
		centroids := [][]float64{{0, 0}, {10, 10}}
		points := [][]float64{{1, 1}, {9, 9}, {0, 2}, {11, 10}}
		p := Assign(centroids, points)
		assert.Equal(t, [][]int{{0, 2}, {1, 3}}, p.Clusters)
		assert.Equal(t, []int{0, 1, 0, 1}, p.Labels)
	})
	t.Run("tie goes to lowest index", func(t *testing.T) {
		centroids := [][]float64{{-1}, {1}, {1}}
		points := [][]float64{{0}, {1}, {2}}
		p := Assign(centroids, points)
		assert.Equal(t, []int{0, 1, 1}, p.Labels)
		assert.Empty(t, p.Clusters[2])
	})
	t.Run("partition is complete", func(t *testing.T) {
		centroids := [][]float64{{0, 0}, {5, 5}, {0, 5}}
		var points [][]float64
		for x := range 7 {
			for y := range 7 {
				points = append(points, []float64{float64(x), float64(y)})
			}
		}
		p := Assign(centroids, points)
		require.Equal(t, 3, p.Len())
		seen := make([]int, len(points))
		for c, members := range p.Clusters {
			for _, i := range members {
				seen[i]++
				assert.Equal(t, c, p.Labels[i])
			}
		}
		for i, n := range seen {
			assert.Equal(t, 1, n, "point %d", i)
		}
	})
}

func TestUpdate(t *testing.T) {
	points := [][]float64{{7, 8}, {0, 0}, {2, 4}, {10, 10}}
	p := Partition{
		Clusters: [][]int{{1, 2}, {}, {0, 3}},
		Labels:   []int{2, 0, 0, 2},
	}
	centroids := Update(p, points, 2)
	require.Len(t, centroids, 3)
	assert.Equal(t, []float64{1, 2}, centroids[0])
	assert.Equal(t, []float64{7, 8}, centroids[1], "empty cluster falls back to the first point")
	assert.Equal(t, []float64{8.5, 9}, centroids[2])

	centroids[1][0] = -1
	assert.Equal(t, 7., points[0][0])
}

func TestConverged(t *testing.T) {
	prev := [][]float64{{0, 0}, {1, 1}}
	test := []struct {
		name string
		next [][]float64
		eps  float64
		exp  bool
	}{
		{"identical", [][]float64{{0, 0}, {1, 1}}, 0.001, true},
		{"below epsilon", [][]float64{{0.0005, 0}, {1, 1.0009}}, 0.001, true},
		{"equal to epsilon", [][]float64{{0.001, 0}, {1, 1}}, 0.001, false},
		{"one centroid moving", [][]float64{{0, 0}, {1, 2}}, 0.001, false},
		{"tighter threshold", [][]float64{{0.0005, 0}, {1, 1}}, 0.0001, false},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exp, Converged(prev, tt.next, tt.eps))
		})
	}
}

func TestMaxShift(t *testing.T) {
	prev := [][]float64{{0, 0}, {1, 1}}
	next := [][]float64{{3, 4}, {1, 2}}
	assert.InDelta(t, 5., MaxShift(prev, next), 1e-12)
	assert.Equal(t, 0., MaxShift(prev, prev))
}

func TestMeanStore(t *testing.T) {
	s := NewMeanStore(3)
	s.Add([]float64{1, 2, 3})
	s.Add([]float64{3, 2, 1})
	s.Add([]float64{2, 2, 2})
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, []float64{2, 2, 2}, s.Mean())

	s.Reset()
	assert.Equal(t, 0, s.Count())

	s.Add([]float64{1, 0, -1})
	mean := s.Mean()
	assert.Equal(t, []float64{1, 0, -1}, mean)
	assert.False(t, math.IsNaN(mean[0]))
}
