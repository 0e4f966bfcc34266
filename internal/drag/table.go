// Package drag holds standard-projectile drag tables (Mach -> Cd) and the
// interpolation used by the trajectory stepper on every step.
package drag

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a Mach number falls outside a table's domain.
	ErrOutOfRange = errors.New("mach number outside drag table domain")
	// ErrInvalidTable is returned when table data violates the table invariants.
	ErrInvalidTable = errors.New("invalid drag table")
)

// OutOfRangeError reports the Mach number that missed the table and the
// table's domain [Min, Max).
type OutOfRangeError struct {
	Mach float64
	Min  float64
	Max  float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("mach %.4f outside drag table domain [%.4f, %.4f)", e.Mach, e.Min, e.Max)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// Table is an immutable, piecewise-linear Mach -> drag coefficient mapping.
// Keys are strictly increasing and there are at least two entries.
type Table struct {
	mach []float64
	cd   []float64
}

// NewTable copies the given columns into a Table after checking that they
// have equal length, at least two rows and strictly increasing Mach keys.
func NewTable(mach, cd []float64) (*Table, error) {
	if len(mach) != len(cd) {
		return nil, fmt.Errorf("%w: %d mach keys but %d coefficients", ErrInvalidTable, len(mach), len(cd))
	}
	if len(mach) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 entries, got %d", ErrInvalidTable, len(mach))
	}
	for i := 1; i < len(mach); i++ {
		if !(mach[i] > mach[i-1]) {
			return nil, fmt.Errorf("%w: mach keys not strictly increasing at row %d (%g after %g)",
				ErrInvalidTable, i, mach[i], mach[i-1])
		}
	}

	t := &Table{
		mach: make([]float64, len(mach)),
		cd:   make([]float64, len(cd)),
	}
	copy(t.mach, mach)
	copy(t.cd, cd)
	return t, nil
}

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.mach) }

// Entry returns the i-th (mach, cd) pair.
func (t *Table) Entry(i int) (mach, cd float64) { return t.mach[i], t.cd[i] }

// Domain returns the smallest and largest Mach keys. Lookups are valid for
// min <= mach < max.
func (t *Table) Domain() (min, max float64) {
	return t.mach[0], t.mach[len(t.mach)-1]
}

// Lookup returns the drag coefficient at the given Mach number by linear
// interpolation between the bracketing keys m0 <= mach < m1. An exact key
// match returns the stored coefficient. Mach below the first key, at or above
// the last key, or NaN yields an *OutOfRangeError.
func (t *Table) Lookup(mach float64) (float64, error) {
	n := len(t.mach)
	if !(mach >= t.mach[0]) || mach >= t.mach[n-1] {
		return 0, &OutOfRangeError{Mach: mach, Min: t.mach[0], Max: t.mach[n-1]}
	}

	// Largest lo with mach[lo] <= mach; mach[hi] > mach.
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := int(uint(lo+hi) >> 1)
		if t.mach[mid] <= mach {
			lo = mid
		} else {
			hi = mid
		}
	}

	m0, c0 := t.mach[lo], t.cd[lo]
	if mach == m0 {
		return c0, nil
	}
	m1, c1 := t.mach[hi], t.cd[hi]
	return c0 + (mach-m0)*(c1-c0)/(m1-m0), nil
}
