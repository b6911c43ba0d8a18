// Package arith contains overflow-checked size arithmetic for capacity
// and growth calculations.
package arith

import "math"

// AddCap adds a and b, returning ok = false when the result would overflow int.
func AddCap(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulCap multiplies a and b, returning ok = false when the result would
// overflow int. Used for count * elementSize style calculations.
func MulCap(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > 0 && b > 0 {
		if a > math.MaxInt/b {
			return 0, false
		}
	}
	if a < 0 && b < 0 {
		if a < math.MaxInt/b {
			return 0, false
		}
	}
	if a > 0 && b < 0 {
		if b < math.MinInt/a {
			return 0, false
		}
	}
	if a < 0 && b > 0 {
		if a < math.MinInt/b {
			return 0, false
		}
	}
	return a * b, true
}

// Align8 rounds n up to the next multiple of 8. Returns ok = false when the
// rounded value would overflow int.
func Align8(n int) (int, bool) {
	if n < 0 {
		return 0, false
	}
	aligned, ok := AddCap(n, 7)
	if !ok {
		return 0, false
	}
	return aligned &^ 7, true
}

// GrowCap computes the next capacity when growing from have to at least need,
// doubling until need is covered. Returns ok = false on overflow.
func GrowCap(have, need, floor int) (int, bool) {
	if need < 0 {
		return 0, false
	}
	next := have
	if next < floor {
		next = floor
	}
	if next < 1 {
		next = 1
	}
	for next < need {
		doubled, ok := MulCap(next, 2)
		if !ok {
			// Doubling overflows; fall back to the exact request if it
			// is itself representable.
			return need, true
		}
		next = doubled
	}
	return next, true
}
