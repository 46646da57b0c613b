package ahp

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phoneCriteria() []Criterion {
	return []Criterion{
		{Name: "Memory", Importance: 1},
		{Name: "Storage", Importance: 1},
		{Name: "CPU Frequency", Importance: 1, Attribute: "cpu"},
		{Name: "Price", Importance: 1},
		{Name: "Brand", Importance: 1},
	}
}

func TestNewComparisonMatrixIsAllOnes(t *testing.T) {
	m := NewComparisonMatrix(phoneCriteria())
	require.Equal(t, 5, m.Size())
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			if m.At(i, j) != 1 {
				t.Errorf("[%d][%d] = %f, want 1", i, j, m.At(i, j))
			}
		}
	}
}

func TestNewComparisonMatrixEmpty(t *testing.T) {
	m := NewComparisonMatrix(nil)
	assert.Equal(t, 0, m.Size())
	assert.Empty(t, m.Rows())
}

func TestCriterionKey(t *testing.T) {
	assert.Equal(t, "price", Criterion{Name: "Price"}.Key())
	assert.Equal(t, "cpu frequency", Criterion{Name: "CPU Frequency"}.Key())
	assert.Equal(t, "cpu", Criterion{Name: "CPU Frequency", Attribute: "CPU"}.Key())
}

func TestUpdateSetsReciprocal(t *testing.T) {
	m := NewComparisonMatrix(phoneCriteria())
	next, err := m.Update(0, 3, 5)
	require.NoError(t, err)

	assert.Equal(t, 5.0, next.At(0, 3))
	assert.InDelta(t, 0.2, next.At(3, 0), 1e-12)
	for k := 0; k < 5; k++ {
		for l := 0; l < 5; l++ {
			if (k == 0 && l == 3) || (k == 3 && l == 0) {
				continue
			}
			if next.At(k, l) != m.At(k, l) {
				t.Errorf("[%d][%d] changed: %f -> %f", k, l, m.At(k, l), next.At(k, l))
			}
		}
	}
	// copy-on-write: the original is untouched
	assert.Equal(t, 1.0, m.At(0, 3))
	assert.Equal(t, 1.0, m.At(3, 0))
}

func TestUpdateAcceptsFractionsAndNonIntegers(t *testing.T) {
	m := NewComparisonMatrix(phoneCriteria())
	for _, v := range []float64{1.0 / 3, 0.5, 2.5, 7.25} {
		next, err := m.Update(1, 2, v)
		require.NoError(t, err, "value %f", v)
		assert.InDelta(t, 1, next.At(1, 2)*next.At(2, 1), 1e-9)
	}
}

func TestUpdateRejects(t *testing.T) {
	m := NewComparisonMatrix(phoneCriteria())
	tests := []struct {
		name     string
		row, col int
		value    float64
	}{
		{"diagonal", 2, 2, 3},
		{"zero", 0, 1, 0},
		{"negative", 0, 1, -3},
		{"nan", 0, 1, math.NaN()},
		{"inf", 0, 1, math.Inf(1)},
		{"row out of range", 5, 1, 3},
		{"col out of range", 0, -1, 3},
		{"tiny reciprocal overflow", 0, 1, 1e-320},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := m.Rows()
			_, err := m.Update(tt.row, tt.col, tt.value)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidComparison))

			var ice *InvalidComparisonError
			require.True(t, errors.As(err, &ice))
			assert.Equal(t, tt.row, ice.Row)
			assert.Equal(t, tt.col, ice.Col)
			assert.Equal(t, before, m.Rows(), "matrix must be unchanged")
		})
	}
}

func TestRepeatedUpdatesKeepReciprocalSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := NewComparisonMatrix(phoneCriteria())
	n := m.Size()
	for k := 0; k < 500; k++ {
		row, col := rng.Intn(n), rng.Intn(n)
		if row == col {
			continue
		}
		v := float64(rng.Intn(9) + 1)
		if rng.Intn(2) == 0 {
			v = 1 / v
		}
		next, err := m.Update(row, col, v)
		require.NoError(t, err)
		m = next

		for i := 0; i < n; i++ {
			if m.At(i, i) != 1 {
				t.Fatalf("step %d: diagonal [%d][%d] = %f", k, i, i, m.At(i, i))
			}
			for j := 0; j < n; j++ {
				if math.Abs(m.At(i, j)*m.At(j, i)-1) > 1e-9 {
					t.Fatalf("step %d: [%d][%d]*[%d][%d] = %f", k, i, j, j, i, m.At(i, j)*m.At(j, i))
				}
			}
		}
	}
}

func TestFromRows(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		rows := [][]float64{
			{1, 3, 0.5},
			{1.0 / 3, 1, 2},
			{2, 0.5, 1},
		}
		m, err := FromRows(rows)
		require.NoError(t, err)
		assert.Equal(t, rows, m.Rows())
	})

	t.Run("empty", func(t *testing.T) {
		m, err := FromRows(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Size())
	})

	t.Run("not square", func(t *testing.T) {
		_, err := FromRows([][]float64{{1, 2}, {0.5}})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("bad diagonal", func(t *testing.T) {
		_, err := FromRows([][]float64{{2, 1}, {1, 1}})
		assert.ErrorIs(t, err, ErrInvalidComparison)
	})

	t.Run("not reciprocal", func(t *testing.T) {
		_, err := FromRows([][]float64{{1, 3}, {3, 1}})
		var ice *InvalidComparisonError
		require.ErrorAs(t, err, &ice)
		assert.Equal(t, 0, ice.Row)
		assert.Equal(t, 1, ice.Col)
	})

	t.Run("non-positive", func(t *testing.T) {
		_, err := FromRows([][]float64{{1, -1}, {-1, 1}})
		assert.ErrorIs(t, err, ErrInvalidComparison)
	})
}

func TestRowsIsDeepCopy(t *testing.T) {
	m := NewComparisonMatrix(phoneCriteria())
	rows := m.Rows()
	rows[0][1] = 42
	assert.Equal(t, 1.0, m.At(0, 1))
}

func TestScaleLabel(t *testing.T) {
	assert.Equal(t, "Equal importance", ScaleLabel(1))
	assert.Equal(t, "Essential or strong importance", ScaleLabel(5))
	assert.Equal(t, "Extreme importance", ScaleLabel(9))
	assert.Equal(t, "", ScaleLabel(0))
	assert.Equal(t, "", ScaleLabel(10))
	assert.Len(t, Scale, 9)
}
