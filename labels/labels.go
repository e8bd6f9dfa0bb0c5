// Package labels stores per-point cluster assignments in a bit-packed form.
//
// Each label takes the minimum number of bits needed to represent K-1, so a
// run with K=2 costs one bit per point and K=5 costs three.
package labels

import (
	"fmt"
	"math/bits"

	"github.com/yyyoichi/bitstream-go"
)

// Labels is a packed sequence of cluster indices in [0, K).
type Labels struct {
	n, k, width int
	reader      *bitstream.BitReader[uint64]
}

// New packs assignments, whose values must be in [0, k).
// It panics if a value is out of range.
func New(assignments []int, k int) *Labels {
	width := Width(k)
	w := bitstream.NewBitWriter[uint64](0, 0)
	for i, v := range assignments {
		if v < 0 || v >= k {
			panic(fmt.Sprintf("labels: assignment %d of point %d is out of range [0, %d)", v, i, k))
		}
		for b := width - 1; b >= 0; b-- {
			w.WriteBool(v>>b&1 == 1)
		}
	}
	return newLabels(w.Data(), len(assignments), k)
}

// Decode restores labels for n points and k clusters from data produced by Data.
func Decode(data []uint64, n, k int) *Labels {
	return newLabels(data, n, k)
}

func newLabels(data []uint64, n, k int) *Labels {
	width := Width(k)
	reader := bitstream.NewBitReader(data, 0, 0)
	reader.SetBits(n * width)
	return &Labels{n: n, k: k, width: width, reader: reader}
}

// Width returns the number of bits used per label for k clusters.
func Width(k int) int {
	return max(1, bits.Len(uint(k-1)))
}

// At returns the label of point i.
func (l *Labels) At(i int) int {
	var v int
	offset := i * l.width
	for b := range l.width {
		bit, _ := l.reader.ReadBitAt(offset + b)
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v
}

// Len returns the number of points.
func (l *Labels) Len() int { return l.n }

func (l *Labels) K() int { return l.k }

func (l *Labels) Width() int { return l.width }

// Ints unpacks all labels.
func (l *Labels) Ints() []int {
	out := make([]int, l.n)
	for i := range out {
		out[i] = l.At(i)
	}
	return out
}

// Counts returns the number of points in each cluster.
func (l *Labels) Counts() []int {
	counts := make([]int, l.k)
	for i := range l.n {
		counts[l.At(i)]++
	}
	return counts
}

// Data returns the packed words.
func (l *Labels) Data() []uint64 { return l.reader.Data() }
