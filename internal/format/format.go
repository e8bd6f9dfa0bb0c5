package format

import (
	"bufio"
	"io"
	"strconv"
)

// Precision is the number of digits printed after the decimal point.
const Precision = 4

// AppendPoint appends the coordinates of p to dst as fixed-point decimals
// joined by commas.
func AppendPoint(dst []byte, p []float64) []byte {
	for i, v := range p {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendFloat(dst, v, 'f', Precision, 64)
	}
	return dst
}

func Point(p []float64) string {
	return string(AppendPoint(nil, p))
}

// WriteCentroids writes one line per centroid, in order.
func WriteCentroids(w io.Writer, centroids [][]float64) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, c := range centroids {
		buf = AppendPoint(buf[:0], c)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LabelSource is a sequence of cluster labels, one per point.
type LabelSource interface {
	Len() int
	At(i int) int
}

// WriteLabels writes the labels of l as a single comma-joined line.
func WriteLabels(w io.Writer, l LabelSource) error {
	var buf []byte
	for i := range l.Len() {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(l.At(i)), 10)
	}
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}
