package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrMalformed = errors.New("malformed point")
	ErrDimension = errors.New("inconsistent point dimension")
)

const maxLineSize = 16 << 20

// Dataset is an immutable N x d set of points.
type Dataset struct {
	m      *mat.Dense
	points [][]float64
}

// Read parses one point per line, coordinates separated by commas.
// Blank lines are skipped. Every point must have the same dimension.
func Read(r io.Reader) (*Dataset, error) {
	var (
		data []float64
		n    int
		dim  int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		if n == 0 {
			dim = len(fields)
		} else if len(fields) != dim {
			return nil, fmt.Errorf("%w: line %d has %d values, want %d", ErrDimension, line, len(fields), dim)
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d:%w", ErrMalformed, line, err)
			}
			data = append(data, v)
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if n == 0 {
		return &Dataset{}, nil
	}
	return New(mat.NewDense(n, dim, data)), nil
}

// New wraps m as a dataset, one point per row. m must not be modified afterwards.
func New(m *mat.Dense) *Dataset {
	rows, _ := m.Dims()
	points := make([][]float64, rows)
	for i := range points {
		points[i] = m.RawRowView(i)
	}
	return &Dataset{m: m, points: points}
}

// Len returns the number of points.
func (d *Dataset) Len() int { return len(d.points) }

// Dim returns the dimension shared by all points, or 0 for an empty dataset.
func (d *Dataset) Dim() int {
	if d.m == nil {
		return 0
	}
	_, c := d.m.Dims()
	return c
}

// Points returns the rows of the dataset. The slices share storage with the
// dataset and must be treated as read-only.
func (d *Dataset) Points() [][]float64 { return d.points }
