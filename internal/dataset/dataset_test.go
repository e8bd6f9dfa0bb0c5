package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRead(t *testing.T) {
	test := []struct {
		name  string
		input string
		exp   [][]float64
	}{
		{"two dims", "0,0\n0,1\n1.5,-2\n", [][]float64{{0, 0}, {0, 1}, {1.5, -2}}},
		{"blank lines skipped", "\n1,2\n\n   \n3,4\n\n", [][]float64{{1, 2}, {3, 4}}},
		{"no trailing newline", "1\n2\n3", [][]float64{{1}, {2}, {3}}},
		{"crlf and spaces", "1.0, 2.0\r\n 3.0 ,4.0\r\n", [][]float64{{1, 2}, {3, 4}}},
		{"exponent", "1e3,-2.5E-1\n", [][]float64{{1000, -0.25}}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Read(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.exp, ds.Points())
			assert.Equal(t, len(tt.exp), ds.Len())
			assert.Equal(t, len(tt.exp[0]), ds.Dim())
		})
	}
}

func TestRead_Empty(t *testing.T) {
	ds, err := Read(strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Equal(t, 0, ds.Dim())
	assert.Empty(t, ds.Points())
}

func TestRead_Error(t *testing.T) {
	test := []struct {
		name  string
		input string
		exp   error
	}{
		{"dimension mismatch", "1,2\n3\n", ErrDimension},
		{"dimension grows", "1\n2,3\n", ErrDimension},
		{"not a number", "1,a\n", ErrMalformed},
		{"empty field", "1,,2\n", ErrMalformed},
		{"trailing comma", "1,2,\n", ErrMalformed},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.exp)
		})
	}
}

func TestNew(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	ds := New(m)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 2, ds.Dim())
	assert.Equal(t, []float64{3, 4}, ds.Points()[1])
}
