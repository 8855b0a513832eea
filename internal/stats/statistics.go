package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/banshee-data/trackstats/internal/chairlift"
	"github.com/banshee-data/trackstats/internal/geo"
	"github.com/banshee-data/trackstats/internal/trackpoint"
	"github.com/banshee-data/trackstats/internal/units"
)

// optionalFloat distinguishes "never observed" from zero.
type optionalFloat struct {
	v  float64
	ok bool
}

func (o optionalFloat) ptr() *float64 {
	if !o.ok {
		return nil
	}
	v := o.v
	return &v
}

func optionalOf(p *float64) optionalFloat {
	if p == nil {
		return optionalFloat{}
	}
	return optionalFloat{v: *p, ok: true}
}

// TrackStatistics is the running aggregate of a track or track segment.
// The zero value is the empty aggregate with default chairlift thresholds.
type TrackStatistics struct {
	// zero time means unset
	startTime time.Time
	stopTime  time.Time

	totalDistance units.Distance
	// Refreshed from samples or the wall clock, so it may lag stopTime.
	totalTime  time.Duration
	movingTime time.Duration
	maxSpeed   units.Speed

	altitude          Extremity
	totalAltitudeGain optionalFloat
	totalAltitudeLoss optionalFloat
	averageHeartRate  optionalFloat

	idle bool

	lift chairlift.LiftDetector
	wait chairlift.WaitDetector
}

// New returns an empty aggregate using the default chairlift thresholds.
func New() TrackStatistics {
	return NewWithThresholds(chairlift.DefaultThresholds())
}

// NewWithThresholds returns an empty aggregate using th for both chairlift
// detectors.
func NewWithThresholds(th chairlift.Thresholds) TrackStatistics {
	return TrackStatistics{
		lift: chairlift.NewLiftDetector(th),
		wait: chairlift.NewWaitDetector(th),
	}
}

// Copy returns an independent copy of s.
func (s TrackStatistics) Copy() TrackStatistics {
	return s
}

// IsInitialized reports whether a start time has been set.
func (s TrackStatistics) IsInitialized() bool {
	return !s.startTime.IsZero()
}

// Reset clears every total and all chairlift state. Thresholds are kept.
func (s *TrackStatistics) Reset() {
	*s = NewWithThresholds(s.lift.Thresholds())
}

// ResetAt clears the aggregate and starts it at t.
func (s *TrackStatistics) ResetAt(t time.Time) {
	s.Reset()
	s.SetStartTime(t)
}

func (s TrackStatistics) StartTime() time.Time { return s.startTime }
func (s TrackStatistics) StopTime() time.Time  { return s.stopTime }

// SetStartTime sets the start time and moves the stop time to it. It is
// meant to be called once, when the track starts.
func (s *TrackStatistics) SetStartTime(t time.Time) {
	s.startTime = t
	s.stopTime = t
}

// SetStopTime sets the stop time. Times must not go backwards, but a stop
// time equal to the start time is accepted since two sensors with separate
// clocks (GPS and a heart rate strap) can report the same instant.
func (s *TrackStatistics) SetStopTime(t time.Time) error {
	if s.IsInitialized() && t.Before(s.startTime) {
		return fmt.Errorf("stop time %s is before start time %s: %w",
			t.Format(time.RFC3339Nano), s.startTime.Format(time.RFC3339Nano), ErrInvariantViolation)
	}
	s.stopTime = t
	return nil
}

func (s TrackStatistics) TotalDistance() units.Distance { return s.totalDistance }

func (s *TrackStatistics) SetTotalDistance(d units.Distance) { s.totalDistance = d }

func (s *TrackStatistics) AddTotalDistance(d units.Distance) {
	s.totalDistance = s.totalDistance.Plus(d)
}

// TotalTime returns the active time of the track. It is only as fresh as
// the last sample or RefreshTotalTime call.
func (s TrackStatistics) TotalTime() time.Duration { return s.totalTime }

func (s *TrackStatistics) SetTotalTime(d time.Duration) { s.totalTime = d }

func (s TrackStatistics) MovingTime() time.Duration { return s.movingTime }

func (s *TrackStatistics) SetMovingTime(d time.Duration) { s.movingTime = d }

// AddMovingTime adds d to the moving time. A negative d is rejected.
func (s *TrackStatistics) AddMovingTime(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("moving time cannot be negative (%s): %w", d, ErrInvariantViolation)
	}
	s.movingTime += d
	return nil
}

// AddMovingTimeBetween adds the time from last to cur.
func (s *TrackStatistics) AddMovingTimeBetween(cur, last *trackpoint.TrackPoint) error {
	return s.AddMovingTime(trackpoint.Elapsed(last, cur))
}

// StoppedTime returns total time minus moving time.
func (s TrackStatistics) StoppedTime() time.Duration {
	return s.totalTime - s.movingTime
}

func (s TrackStatistics) IsIdle() bool       { return s.idle }
func (s *TrackStatistics) SetIdle(idle bool) { s.idle = idle }

// AverageSpeed returns total distance over total time, zero before any time
// has elapsed.
func (s TrackStatistics) AverageSpeed() units.Speed {
	if s.totalTime == 0 {
		return 0
	}
	return units.SpeedOf(s.totalDistance, s.totalTime)
}

// AverageMovingSpeed returns total distance over moving time.
func (s TrackStatistics) AverageMovingSpeed() units.Speed {
	return units.SpeedOf(s.totalDistance, s.movingTime)
}

// MaxSpeed returns the recorded maximum speed, raised to the average moving
// speed if lower. Missed fast samples would otherwise leave the maximum
// below the average.
func (s TrackStatistics) MaxSpeed() units.Speed {
	return units.MaxSpeed(s.maxSpeed, s.AverageMovingSpeed())
}

func (s *TrackStatistics) SetMaxSpeed(v units.Speed) { s.maxSpeed = v }

func (s TrackStatistics) HasAltitudeMin() bool { return !math.IsInf(s.MinAltitude(), 0) }
func (s TrackStatistics) HasAltitudeMax() bool { return !math.IsInf(s.MaxAltitude(), 0) }

// MinAltitude returns the lowest altitude seen, +Inf if none.
func (s TrackStatistics) MinAltitude() float64 { return s.altitude.Min() }

// MaxAltitude returns the highest altitude seen, -Inf if none. It comes from
// smoothed altitudes, so it can be lower than the current altitude.
func (s TrackStatistics) MaxAltitude() float64 { return s.altitude.Max() }

func (s *TrackStatistics) SetMinAltitude(m float64) { s.altitude.SetMin(m) }
func (s *TrackStatistics) SetMaxAltitude(m float64) { s.altitude.SetMax(m) }

// AltitudeExtremities returns a copy of the altitude tracker.
func (s TrackStatistics) AltitudeExtremities() Extremity { return s.altitude }

// UpdateAltitudeExtremities feeds altitude into the tracker; nil is ignored.
func (s *TrackStatistics) UpdateAltitudeExtremities(altitude *float64) {
	if altitude != nil {
		s.altitude.Update(*altitude)
	}
}

func (s TrackStatistics) HasAverageHeartRate() bool { return s.averageHeartRate.ok }

// AverageHeartRate returns the average heart rate; ok is false if none has
// been observed.
func (s TrackStatistics) AverageHeartRate() (hr units.HeartRate, ok bool) {
	return units.HeartRate(s.averageHeartRate.v), s.averageHeartRate.ok
}

// SetAverageHeartRate sets the average heart rate. nil is ignored and does
// not clear a known value.
func (s *TrackStatistics) SetAverageHeartRate(hr *units.HeartRate) {
	if hr != nil {
		s.averageHeartRate = optionalFloat{v: hr.BPM(), ok: true}
	}
}

func (s TrackStatistics) HasTotalAltitudeGain() bool { return s.totalAltitudeGain.ok }
func (s TrackStatistics) HasTotalAltitudeLoss() bool { return s.totalAltitudeLoss.ok }

// TotalAltitudeGain returns the accumulated gain in meters, nil if never
// observed.
func (s TrackStatistics) TotalAltitudeGain() *float64 { return s.totalAltitudeGain.ptr() }

// TotalAltitudeLoss returns the accumulated loss in meters, nil if never
// observed.
func (s TrackStatistics) TotalAltitudeLoss() *float64 { return s.totalAltitudeLoss.ptr() }

// SetTotalAltitudeGain replaces the gain; nil marks it as never observed.
func (s *TrackStatistics) SetTotalAltitudeGain(g *float64) { s.totalAltitudeGain = optionalOf(g) }

// SetTotalAltitudeLoss replaces the loss; nil marks it as never observed.
func (s *TrackStatistics) SetTotalAltitudeLoss(l *float64) { s.totalAltitudeLoss = optionalOf(l) }

// AddTotalAltitudeGain adds g, starting from zero if no gain was observed.
func (s *TrackStatistics) AddTotalAltitudeGain(g float64) {
	s.totalAltitudeGain = optionalFloat{v: s.totalAltitudeGain.v + g, ok: true}
}

// AddTotalAltitudeLoss adds l, starting from zero if no loss was observed.
func (s *TrackStatistics) AddTotalAltitudeLoss(l float64) {
	s.totalAltitudeLoss = optionalFloat{v: s.totalAltitudeLoss.v + l, ok: true}
}

// UpdateChairliftTime feeds p through the lift state machine.
func (s *TrackStatistics) UpdateChairliftTime(p *trackpoint.TrackPoint) {
	s.lift.Update(p)
}

// InChairlift reports whether the last sample was classified as riding a lift.
func (s TrackStatistics) InChairlift() bool { return s.lift.OnLift() }

// ChairliftStartPoint returns the sample that started the current or
// earliest lift ride, or nil.
func (s TrackStatistics) ChairliftStartPoint() *trackpoint.TrackPoint { return s.lift.StartPoint() }

// ChairliftTime returns the time spent riding lifts.
func (s TrackStatistics) ChairliftTime() time.Duration { return s.lift.Duration() }

// StartChairliftActivity arms the lift queue detector.
func (s *TrackStatistics) StartChairliftActivity(t time.Time, elevation float64) {
	s.wait.Start(t, elevation)
}

// SetUserPosition records the position used by the lift queue detector.
func (s *TrackStatistics) SetUserPosition(p geo.Point) {
	s.wait.SetPosition(p)
}

// UpdateChairliftLocation runs the lift queue detector against the lift at
// latitude/longitude.
func (s *TrackStatistics) UpdateChairliftLocation(latitude, longitude, elevation float64, t time.Time) {
	s.wait.Update(geo.Point{Lat: latitude, Lon: longitude}, elevation, t)
}

// IsEndOfRun reports whether rising to elevation at t ends the current run.
func (s TrackStatistics) IsEndOfRun(elevation float64, t time.Time) bool {
	return s.wait.IsEndOfRun(elevation, t)
}

// ChairliftActivityActive reports whether the lift queue detector is armed.
func (s TrackStatistics) ChairliftActivityActive() bool { return s.wait.Active() }

// TotalWaitTime returns the time spent queueing at lifts.
func (s TrackStatistics) TotalWaitTime() time.Duration { return s.wait.TotalWait() }

// TotalChairliftTime returns riding time plus queueing time.
func (s TrackStatistics) TotalChairliftTime() time.Duration {
	return s.lift.Duration() + s.wait.TotalWait()
}
