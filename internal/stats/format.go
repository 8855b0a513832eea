package stats

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Equal reports whether s and other hold the same statistics. Transient
// detector state (queue arrival, armed activity, last elevation, position)
// and thresholds are not compared.
func (s TrackStatistics) Equal(other TrackStatistics) bool {
	return s.startTime.Equal(other.startTime) &&
		s.stopTime.Equal(other.stopTime) &&
		s.totalDistance == other.totalDistance &&
		s.totalTime == other.totalTime &&
		s.movingTime == other.movingTime &&
		sameFloat(float64(s.maxSpeed), float64(other.maxSpeed)) &&
		s.altitude == other.altitude &&
		s.totalAltitudeGain == other.totalAltitudeGain &&
		s.totalAltitudeLoss == other.totalAltitudeLoss &&
		s.averageHeartRate == other.averageHeartRate &&
		s.idle == other.idle &&
		s.lift.OnLift() == other.lift.OnLift() &&
		s.lift.Duration() == other.lift.Duration() &&
		sameStart(s, other) &&
		s.wait.TotalWait() == other.wait.TotalWait()
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func sameStart(a, b TrackStatistics) bool {
	pa, pb := a.lift.StartPoint(), b.lift.StartPoint()
	if pa == nil || pb == nil {
		return pa == pb
	}
	return pa.Time.Equal(pb.Time)
}

// String renders every statistic on one line for debugging.
func (s TrackStatistics) String() string {
	var b strings.Builder
	b.WriteString("TrackStatistics{")
	fmt.Fprintf(&b, "start: %s; stop: %s", formatTime(s.startTime), formatTime(s.stopTime))
	fmt.Fprintf(&b, "; distance: %v; total time: %s; moving time: %s", s.totalDistance, s.totalTime, s.movingTime)
	fmt.Fprintf(&b, "; max speed: %v", s.MaxSpeed())
	fmt.Fprintf(&b, "; min altitude: %g; max altitude: %g", s.MinAltitude(), s.MaxAltitude())
	fmt.Fprintf(&b, "; altitude gain: %s; altitude loss: %s",
		formatOptional(s.totalAltitudeGain, "m"), formatOptional(s.totalAltitudeLoss, "m"))
	fmt.Fprintf(&b, "; average heart rate: %s", formatOptional(s.averageHeartRate, "bpm"))
	fmt.Fprintf(&b, "; idle: %t", s.idle)
	fmt.Fprintf(&b, "; chairlift time: %s; chairlift wait: %s; chairlift total: %s",
		s.lift.Duration(), s.wait.TotalWait(), s.TotalChairliftTime())
	b.WriteString("}")
	return b.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "unset"
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func formatOptional(o optionalFloat, unit string) string {
	if !o.ok {
		return "unset"
	}
	return fmt.Sprintf("%g%s", o.v, unit)
}
