package stats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/trackstats/internal/units"
)

// Merge combines other into s. Both aggregates are assumed to cover disjoint
// time windows of the same track.
//
// Start/stop times widen to cover both, totals add up, maxima and altitude
// ranges combine, and optional gain/loss/heart rate stay unset only when
// unset on both sides. Heart rates are averaged weighted by each side's
// total time before the merge. Chairlift riding and queueing times add up
// and the earlier lift start point wins.
func (s *TrackStatistics) Merge(other TrackStatistics) {
	if s.startTime.IsZero() || (!other.startTime.IsZero() && other.startTime.Before(s.startTime)) {
		s.startTime = other.startTime
	}
	if s.stopTime.IsZero() || (!other.stopTime.IsZero() && other.stopTime.After(s.stopTime)) {
		s.stopTime = other.stopTime
	}

	// Must run before totalTime is updated below.
	s.averageHeartRate = mergeHeartRate(s.averageHeartRate, s.totalTime.Seconds(),
		other.averageHeartRate, other.totalTime.Seconds())

	s.totalDistance = s.totalDistance.Plus(other.totalDistance)
	s.totalTime += other.totalTime
	s.movingTime += other.movingTime
	s.maxSpeed = units.MaxSpeed(s.maxSpeed, other.maxSpeed)
	s.altitude.Union(other.altitude)

	s.totalAltitudeGain = mergeSum(s.totalAltitudeGain, other.totalAltitudeGain)
	s.totalAltitudeLoss = mergeSum(s.totalAltitudeLoss, other.totalAltitudeLoss)

	s.lift.Merge(&other.lift)
	s.wait.Merge(&other.wait)
}

// Merged returns the merge of b into a copy of a; neither argument changes.
func Merged(a, b TrackStatistics) TrackStatistics {
	a.Merge(b)
	return a
}

func mergeSum(a, b optionalFloat) optionalFloat {
	switch {
	case !a.ok:
		return b
	case !b.ok:
		return a
	default:
		return optionalFloat{v: a.v + b.v, ok: true}
	}
}

// mergeHeartRate returns the time-weighted mean of two optional heart rates.
// With no time on either side the plain mean is used.
func mergeHeartRate(a optionalFloat, aSeconds float64, b optionalFloat, bSeconds float64) optionalFloat {
	switch {
	case !a.ok:
		return b
	case !b.ok:
		return a
	}

	values := []float64{a.v, b.v}
	var weights []float64
	if aSeconds+bSeconds > 0 {
		weights = []float64{aSeconds, bSeconds}
	}
	return optionalFloat{v: stat.Mean(values, weights), ok: true}
}
