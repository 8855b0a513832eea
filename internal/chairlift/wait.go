package chairlift

import (
	"math"
	"time"

	"github.com/banshee-data/trackstats/internal/geo"
)

// WaitDetector accumulates time spent within the boarding radius of a lift.
// It is armed by Start and disarmed when a run ends. The zero value is ready
// to use with DefaultThresholds.
type WaitDetector struct {
	thresholds Thresholds
	configured bool

	position      *geo.Point
	arrivalTime   time.Time
	activityStart time.Time
	lastElevation *float64
	totalWait     time.Duration
}

// NewWaitDetector returns a detector using th.
func NewWaitDetector(th Thresholds) WaitDetector {
	return WaitDetector{thresholds: th, configured: true}
}

// Thresholds returns the effective thresholds.
func (w *WaitDetector) Thresholds() Thresholds {
	return effective(w.thresholds, w.configured)
}

// Start arms the detector at time t and elevation.
func (w *WaitDetector) Start(t time.Time, elevation float64) {
	w.activityStart = t
	w.lastElevation = &elevation
}

// Active reports whether an activity has been started and not yet ended.
func (w *WaitDetector) Active() bool {
	return !w.activityStart.IsZero()
}

// SetPosition records the user's current position for the proximity test.
func (w *WaitDetector) SetPosition(p geo.Point) {
	w.position = &p
}

// Position returns the last recorded user position, or nil.
func (w *WaitDetector) Position() *geo.Point { return w.position }

// TotalWait returns the accumulated queueing time.
func (w *WaitDetector) TotalWait() time.Duration { return w.totalWait }

// Waiting reports whether the user is currently inside a boarding area.
func (w *WaitDetector) Waiting() bool { return !w.arrivalTime.IsZero() }

// Update evaluates the user's position against the lift at liftPos.
//
// Without an active activity only the elevation is recorded. Inside the
// radius the first arrival time is kept. Leaving the radius closes any open
// wait and then checks for the end of a run, which disarms the detector.
// The elevation is always recorded last.
func (w *WaitDetector) Update(liftPos geo.Point, elevation float64, t time.Time) {
	defer func() { w.lastElevation = &elevation }()

	if !w.Active() {
		return
	}

	if w.near(liftPos) {
		if w.arrivalTime.IsZero() {
			w.arrivalTime = t
			diagf("arrived at lift %.5f,%.5f at %s", liftPos.Lat, liftPos.Lon, t.Format(time.RFC3339))
		}
		return
	}

	if !w.arrivalTime.IsZero() {
		wait := t.Sub(w.arrivalTime)
		w.totalWait += wait
		w.arrivalTime = time.Time{}
		diagf("left lift queue after %s (total %s)", wait, w.totalWait)
	}

	if w.IsEndOfRun(elevation, t) {
		w.activityStart = time.Time{}
		diagf("end of run at %s", t.Format(time.RFC3339))
	}
}

// IsEndOfRun reports whether rising to elevation at time t marks the end of
// a run: the rise since the previous elevation must exceed
// EndOfRunElevation and the implied vertical speed since the activity
// started must reach EndOfRunVerticalSpeed. It is always false when no
// activity is active.
func (w *WaitDetector) IsEndOfRun(elevation float64, t time.Time) bool {
	if !w.Active() || w.lastElevation == nil {
		return false
	}
	th := w.Thresholds()

	rise := elevation - *w.lastElevation
	if rise <= th.EndOfRunElevation {
		return false
	}

	elapsed := t.Sub(w.activityStart).Seconds()
	if elapsed <= 0 {
		// Instantaneous rise.
		return true
	}
	return rise/elapsed >= th.EndOfRunVerticalSpeed
}

// Merge adds other's queueing time. Transient state of w is left as is.
func (w *WaitDetector) Merge(other *WaitDetector) {
	if w.totalWait == 0 {
		w.totalWait = other.totalWait
	} else {
		w.totalWait += other.totalWait
	}
}

func (w *WaitDetector) near(liftPos geo.Point) bool {
	if w.position == nil {
		return false
	}
	return geo.Within(*w.position, liftPos, w.Thresholds().RadiusKm)
}

// NearestStation returns the station closest to pos. ok is false when
// stations is empty.
func NearestStation(stations []geo.Point, pos geo.Point) (nearest geo.Point, ok bool) {
	best := math.Inf(1)
	for _, s := range stations {
		if d := geo.Distance(pos, s).ToM(); d < best {
			best = d
			nearest = s
			ok = true
		}
	}
	return nearest, ok
}
