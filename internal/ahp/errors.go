package ahp

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below unwrap to these, so callers can
// match with errors.Is and still reach the details with errors.As.
var (
	ErrInvalidComparison        = errors.New("ahp: invalid comparison")
	ErrUnsupportedCriteriaCount = errors.New("ahp: unsupported criteria count")
	ErrMissingAttribute         = errors.New("ahp: missing attribute")
	ErrUnknownAlternative       = errors.New("ahp: unknown alternative")
	ErrDimensionMismatch        = errors.New("ahp: dimension mismatch")
	ErrCorruptMatrix            = errors.New("ahp: corrupt comparison matrix")
)

// InvalidComparisonError is returned by Update and FromRows when a cell
// cannot hold the requested value.
type InvalidComparisonError struct {
	Row    int
	Col    int
	Value  float64
	Reason string
}

func (e *InvalidComparisonError) Error() string {
	return fmt.Sprintf("ahp: invalid comparison [%d][%d]=%g: %s", e.Row, e.Col, e.Value, e.Reason)
}

func (e *InvalidComparisonError) Unwrap() error { return ErrInvalidComparison }

// UnsupportedCriteriaCountError is returned when no random index is known
// for the matrix size.
type UnsupportedCriteriaCountError struct {
	N int
}

func (e *UnsupportedCriteriaCountError) Error() string {
	return fmt.Sprintf("ahp: no random index for %d criteria (supported: 0..%d, or supply one)", e.N, MaxTabulatedCriteria)
}

func (e *UnsupportedCriteriaCountError) Unwrap() error { return ErrUnsupportedCriteriaCount }

// MissingAttributeError names the alternative and criterion that could not be scored.
type MissingAttributeError struct {
	Alternative string
	Criterion   string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("ahp: alternative %q has no value for criterion %q", e.Alternative, e.Criterion)
}

func (e *MissingAttributeError) Unwrap() error { return ErrMissingAttribute }
