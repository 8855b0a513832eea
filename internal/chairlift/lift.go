package chairlift

import (
	"time"

	"github.com/banshee-data/trackstats/internal/trackpoint"
)

// LiftState is the state of the lift state machine.
type LiftState string

const (
	NotOnLift LiftState = "not_on_lift"
	OnLift    LiftState = "on_lift"
)

// LiftDetector classifies samples as riding a lift or not, and accumulates
// riding time. The zero value is ready to use with DefaultThresholds.
type LiftDetector struct {
	thresholds Thresholds
	configured bool
	onLift     bool
	startPoint *trackpoint.TrackPoint
	duration   time.Duration
}

// NewLiftDetector returns a detector using th.
func NewLiftDetector(th Thresholds) LiftDetector {
	return LiftDetector{thresholds: th, configured: true}
}

// Thresholds returns the effective thresholds.
func (d *LiftDetector) Thresholds() Thresholds {
	return effective(d.thresholds, d.configured)
}

// State returns the current state.
func (d *LiftDetector) State() LiftState {
	if d.onLift {
		return OnLift
	}
	return NotOnLift
}

// OnLift reports whether the last sample was classified as riding.
func (d *LiftDetector) OnLift() bool { return d.onLift }

// StartPoint returns the sample that entered the current (or earliest
// merged) lift ride, or nil.
func (d *LiftDetector) StartPoint() *trackpoint.TrackPoint { return d.startPoint }

// Duration returns the accumulated riding time.
func (d *LiftDetector) Duration() time.Duration { return d.duration }

// Update feeds one sample through the state machine. Missing speed, gain or
// loss readings count as zero.
//
// While on a lift, every sample adds the time elapsed since the ride
// started, so Duration is a sum of running elapsed figures rather than a
// sum of per-sample deltas.
func (d *LiftDetector) Update(p *trackpoint.TrackPoint) {
	th := d.Thresholds()
	speed := p.SpeedOrZero()
	gain := p.AltitudeGainOrZero()
	loss := p.AltitudeLossOrZero()

	switch {
	case !d.onLift && !speed.IsInvalid() &&
		th.MaxLiftSpeed.GreaterOrEqualThan(speed) &&
		gain >= th.LiftAltitudeGain:
		d.onLift = true
		start := *p
		d.startPoint = &start
		diagf("entered lift at %s (speed %v, gain %.1fm)", p.Time.Format(time.RFC3339), speed, gain)
	case d.onLift && (th.MaxLiftSpeed.LessThan(speed) || loss > th.LiftAltitudeLoss):
		d.onLift = false
		diagf("left lift at %s (speed %v, loss %.1fm)", p.Time.Format(time.RFC3339), speed, loss)
	}

	if d.onLift {
		d.duration += trackpoint.Elapsed(d.startPoint, p)
	}
	tracef("lift sample %s state=%s duration=%s", p.Time.Format(time.RFC3339), d.State(), d.duration)
}

// Merge folds other's riding time and start point into d. A zero duration
// on d is replaced by other's, otherwise the two are added; the earlier of
// the two start points is kept. The on-lift state of d is left as is.
func (d *LiftDetector) Merge(other *LiftDetector) {
	if d.duration == 0 {
		d.duration = other.duration
	} else {
		d.duration += other.duration
	}

	if d.startPoint == nil {
		d.startPoint = other.startPoint
	} else if other.startPoint != nil && d.startPoint.Time.After(other.startPoint.Time) {
		d.startPoint = other.startPoint
	}
}
