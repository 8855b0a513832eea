package stats

import "math"

// Extremity tracks the running minimum and maximum of a series. Without data
// Min reports +Inf and Max reports -Inf. The zero value is empty.
type Extremity struct {
	min, max       float64
	hasMin, hasMax bool
}

// Update expands the range to include v. NaN is ignored.
func (e *Extremity) Update(v float64) {
	if math.IsNaN(v) {
		return
	}
	if !e.hasMin || v < e.min {
		e.min = v
		e.hasMin = true
	}
	if !e.hasMax || v > e.max {
		e.max = v
		e.hasMax = true
	}
}

// HasData reports whether at least one value has been seen.
func (e Extremity) HasData() bool {
	return e.hasMin && e.hasMax
}

// Min returns the minimum, or +Inf without data.
func (e Extremity) Min() float64 {
	if !e.hasMin {
		return math.Inf(1)
	}
	return e.min
}

// Max returns the maximum, or -Inf without data.
func (e Extremity) Max() float64 {
	if !e.hasMax {
		return math.Inf(-1)
	}
	return e.max
}

// SetMin overrides the minimum. +Inf clears it.
func (e *Extremity) SetMin(v float64) {
	if math.IsInf(v, 1) {
		e.min, e.hasMin = 0, false
		return
	}
	e.min, e.hasMin = v, true
}

// SetMax overrides the maximum. -Inf clears it.
func (e *Extremity) SetMax(v float64) {
	if math.IsInf(v, -1) {
		e.max, e.hasMax = 0, false
		return
	}
	e.max, e.hasMax = v, true
}

// Set overrides both bounds.
func (e *Extremity) Set(lo, hi float64) {
	e.SetMin(lo)
	e.SetMax(hi)
}

// Union expands e to cover other's range. An empty other is ignored.
func (e *Extremity) Union(other Extremity) {
	if !other.HasData() {
		return
	}
	e.Update(other.min)
	e.Update(other.max)
}

// Reset discards all data.
func (e *Extremity) Reset() {
	*e = Extremity{}
}
