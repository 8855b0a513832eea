package units

import (
	"fmt"
	"math"
	"time"
)

// Speed is a speed in meters per second. NaN and infinite values are
// treated as invalid, which is how a sensor reports "no reading".
type Speed float64

// SpeedOf returns distance over duration, or zero for a zero duration.
func SpeedOf(d Distance, dur time.Duration) Speed {
	if dur == 0 {
		return 0
	}
	return Speed(d.ToM() / dur.Seconds())
}

// InvalidSpeed returns the invalid speed sentinel.
func InvalidSpeed() Speed {
	return Speed(math.NaN())
}

// ToMPS returns the speed in meters per second.
func (s Speed) ToMPS() float64 {
	return float64(s)
}

// IsInvalid reports whether s carries no usable value.
func (s Speed) IsInvalid() bool {
	v := float64(s)
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// LessThan reports s < other.
func (s Speed) LessThan(other Speed) bool {
	return s < other
}

// GreaterThan reports s > other.
func (s Speed) GreaterThan(other Speed) bool {
	return s > other
}

// GreaterOrEqualThan reports s >= other.
func (s Speed) GreaterOrEqualThan(other Speed) bool {
	return s >= other
}

// Convert returns the speed expressed in the given unit (see ConvertSpeed).
func (s Speed) Convert(unit string) float64 {
	return ConvertSpeed(float64(s), unit)
}

func (s Speed) String() string {
	if s.IsInvalid() {
		return "invalid"
	}
	return fmt.Sprintf("%gm/s", float64(s))
}

// MaxSpeed returns the larger of a and b. An invalid operand defers to the
// other one.
func MaxSpeed(a, b Speed) Speed {
	if a.IsInvalid() {
		return b
	}
	if b.IsInvalid() {
		return a
	}
	if b > a {
		return b
	}
	return a
}
