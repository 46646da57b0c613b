package ahp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// WeightVector holds one weight per criterion, in criteria order.
// A vector derived from a valid matrix sums to 1.
type WeightVector []float64

// Sum returns the total of all weights.
func (w WeightVector) Sum() float64 {
	return floats.Sum(w)
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightVector) Validate() error {
	if len(w) == 0 {
		return nil
	}
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("weights sum to %.10f, must sum to 1.0", w.Sum())
	}
	for i, v := range w {
		if v < 0 {
			return fmt.Errorf("negative weight at %d: %f", i, v)
		}
	}
	return nil
}

// CalculateWeights approximates the principal eigenvector of m:
//
//	norm[i][j] = m[i][j] / Σ_j m[i][j]
//	weight[j]  = Σ_i norm[i][j] / N
//
// Each normalized row sums to 1, so the weights sum to 1.
func CalculateWeights(m ComparisonMatrix) (WeightVector, error) {
	n := m.Size()
	weights := make(WeightVector, n)
	if n == 0 {
		return weights, nil
	}

	for i, row := range m.Rows() {
		rowSum := floats.Sum(row)
		if !(rowSum > 0) || math.IsInf(rowSum, 0) {
			return nil, fmt.Errorf("row %d sums to %g: %w", i, rowSum, ErrCorruptMatrix)
		}
		for j, v := range row {
			weights[j] += v / rowSum
		}
	}

	for j := range weights {
		weights[j] /= float64(n)
	}
	return weights, nil
}
