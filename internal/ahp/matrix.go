package ahp

import (
	"math"
	"strings"
)

// ReciprocalTolerance bounds |m[i][j]*m[j][i] - 1| for matrices built from rows.
const ReciprocalTolerance = 1e-9

// Criterion is one decision criterion. Importance is carried for callers but
// is not consumed by the weight derivation.
type Criterion struct {
	Name       string  `json:"name" yaml:"name"`
	Importance float64 `json:"importance" yaml:"importance"`
	// Attribute overrides the attribute key used to look up alternative values.
	Attribute string `json:"attribute,omitempty" yaml:"attribute,omitempty"`
}

// Key returns the attribute key for c: Attribute when set, else the lower-cased name.
func (c Criterion) Key() string {
	if c.Attribute != "" {
		return strings.ToLower(c.Attribute)
	}
	return strings.ToLower(c.Name)
}

// ComparisonMatrix is an immutable N×N pairwise comparison matrix.
// The diagonal is always 1 and m[i][j]*m[j][i] == 1 for every pair.
type ComparisonMatrix struct {
	n    int
	data []float64
}

// NewComparisonMatrix returns the default matrix for criteria: every entry 1.
func NewComparisonMatrix(criteria []Criterion) ComparisonMatrix {
	return identity(len(criteria))
}

func identity(n int) ComparisonMatrix {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = 1
	}
	return ComparisonMatrix{n: n, data: data}
}

// FromRows builds a matrix from caller-supplied rows, rejecting anything that
// is not square, has a non-unit diagonal, holds a non-positive or non-finite
// value, or breaks reciprocal symmetry.
func FromRows(rows [][]float64) (ComparisonMatrix, error) {
	n := len(rows)
	m := ComparisonMatrix{n: n, data: make([]float64, n*n)}
	for i, row := range rows {
		if len(row) != n {
			return ComparisonMatrix{}, ErrDimensionMismatch
		}
		for j, v := range row {
			if err := checkValue(i, j, v); err != nil {
				return ComparisonMatrix{}, err
			}
			if i == j && v != 1 {
				return ComparisonMatrix{}, &InvalidComparisonError{Row: i, Col: j, Value: v, Reason: "diagonal must be 1"}
			}
			m.data[i*n+j] = v
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.data[i*n+j]*m.data[j*n+i]-1) > ReciprocalTolerance {
				return ComparisonMatrix{}, &InvalidComparisonError{
					Row: i, Col: j, Value: m.data[i*n+j],
					Reason: "not reciprocal with its transposed cell",
				}
			}
		}
	}
	return m, nil
}

// Size returns N.
func (m ComparisonMatrix) Size() int { return m.n }

// At returns m[row][col]. It panics on out-of-range indices like a slice would.
func (m ComparisonMatrix) At(row, col int) float64 {
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		panic("ahp: matrix index out of range")
	}
	return m.data[row*m.n+col]
}

// Rows returns a deep copy of the matrix as row slices.
func (m ComparisonMatrix) Rows() [][]float64 {
	rows := make([][]float64, m.n)
	for i := range rows {
		rows[i] = append([]float64(nil), m.data[i*m.n:(i+1)*m.n]...)
	}
	return rows
}

// Update returns a copy of m with [row][col]=value and [col][row]=1/value.
// On error m is untouched and the zero matrix is returned.
func (m ComparisonMatrix) Update(row, col int, value float64) (ComparisonMatrix, error) {
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		return ComparisonMatrix{}, &InvalidComparisonError{Row: row, Col: col, Value: value, Reason: "index out of range"}
	}
	if row == col {
		return ComparisonMatrix{}, &InvalidComparisonError{Row: row, Col: col, Value: value, Reason: "diagonal is fixed at 1"}
	}
	if err := checkValue(row, col, value); err != nil {
		return ComparisonMatrix{}, err
	}

	next := ComparisonMatrix{n: m.n, data: append([]float64(nil), m.data...)}
	next.data[row*m.n+col] = value
	next.data[col*m.n+row] = 1 / value
	return next, nil
}

func checkValue(row, col int, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return &InvalidComparisonError{Row: row, Col: col, Value: v, Reason: "value must be finite"}
	case v <= 0:
		return &InvalidComparisonError{Row: row, Col: col, Value: v, Reason: "value must be positive"}
	case math.IsInf(1/v, 0):
		return &InvalidComparisonError{Row: row, Col: col, Value: v, Reason: "reciprocal overflows"}
	}
	return nil
}
