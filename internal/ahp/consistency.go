package ahp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultThreshold is Saaty's acceptability bound on the consistency ratio.
const DefaultThreshold = 0.10

// MaxTabulatedCriteria is the largest N with a built-in random index.
const MaxTabulatedCriteria = 9

// randomIndex is Saaty's random consistency index, indexed by N.
var randomIndex = [MaxTabulatedCriteria + 1]float64{0, 0, 0, 0.58, 0.90, 1.12, 1.24, 1.32, 1.41, 1.45}

// RandomIndex returns the tabulated random index for n criteria.
func RandomIndex(n int) (float64, error) {
	if n < 0 || n > MaxTabulatedCriteria {
		return 0, &UnsupportedCriteriaCountError{N: n}
	}
	return randomIndex[n], nil
}

// ConsistencyReport describes how self-contradictory a comparison matrix is.
type ConsistencyReport struct {
	LambdaMax        float64 `json:"lambda_max"`
	ConsistencyIndex float64 `json:"consistency_index"`
	RandomIndex      float64 `json:"random_index"`
	ConsistencyRatio float64 `json:"consistency_ratio"`
	IsConsistent     bool    `json:"is_consistent"`
}

type consistencyOptions struct {
	threshold   float64
	randomIndex *float64
}

// ConsistencyOption configures CalculateConsistency.
type ConsistencyOption func(*consistencyOptions)

// WithThreshold replaces DefaultThreshold. Non-positive values are ignored.
func WithThreshold(t float64) ConsistencyOption {
	return func(o *consistencyOptions) {
		if t > 0 {
			o.threshold = t
		}
	}
}

// WithRandomIndex supplies the random index to use instead of the table.
// It is required for more than MaxTabulatedCriteria criteria.
func WithRandomIndex(ri float64) ConsistencyOption {
	return func(o *consistencyOptions) {
		o.randomIndex = &ri
	}
}

func gatherConsistencyOptions(opts []ConsistencyOption) consistencyOptions {
	o := consistencyOptions{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// CalculateConsistency estimates lambdaMax by weighting the column sums of
// the unnormalized matrix with w, then derives CI = (λ-N)/(N-1) and CR = CI/RI.
//
// Matrices with N <= 2 are always consistent and report CR = 0.
func CalculateConsistency(m ComparisonMatrix, w WeightVector, opts ...ConsistencyOption) (ConsistencyReport, error) {
	n := m.Size()
	if len(w) != n {
		return ConsistencyReport{}, fmt.Errorf("%d weights for %d criteria: %w", len(w), n, ErrDimensionMismatch)
	}
	o := gatherConsistencyOptions(opts)

	if n <= 1 {
		return ConsistencyReport{LambdaMax: float64(n), IsConsistent: true}, nil
	}

	colSums := make([]float64, n)
	for _, row := range m.Rows() {
		floats.Add(colSums, row)
	}
	lambdaMax := floats.Dot(w, colSums)
	if math.IsNaN(lambdaMax) || math.IsInf(lambdaMax, 0) {
		return ConsistencyReport{}, fmt.Errorf("lambda max is %g: %w", lambdaMax, ErrCorruptMatrix)
	}
	ci := (lambdaMax - float64(n)) / float64(n-1)

	report := ConsistencyReport{LambdaMax: lambdaMax, ConsistencyIndex: ci}
	if n == 2 {
		report.IsConsistent = true
		return report, nil
	}

	ri, err := resolveRandomIndex(n, o)
	if err != nil {
		return ConsistencyReport{}, err
	}
	report.RandomIndex = ri
	report.ConsistencyRatio = ci / ri
	report.IsConsistent = report.ConsistencyRatio < o.threshold
	return report, nil
}

func resolveRandomIndex(n int, o consistencyOptions) (float64, error) {
	if o.randomIndex != nil {
		if *o.randomIndex <= 0 {
			return 0, fmt.Errorf("random index %g for %d criteria must be positive: %w", *o.randomIndex, n, ErrUnsupportedCriteriaCount)
		}
		return *o.randomIndex, nil
	}
	return RandomIndex(n)
}
