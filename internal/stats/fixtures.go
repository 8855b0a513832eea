package stats

import (
	"fmt"
	"time"

	"github.com/banshee-data/trackstats/internal/units"
)

// NewForTest builds an aggregate from literal values. Times are RFC 3339
// strings; durations are whole seconds. It exists for deterministic test
// fixtures and should not be used to build production aggregates.
func NewForTest(start, stop string, distanceM float64, totalS, movingS int, maxSpeedMPS float64, gainM, lossM *float64) (TrackStatistics, error) {
	startTime, err := time.Parse(time.RFC3339Nano, start)
	if err != nil {
		return TrackStatistics{}, fmt.Errorf("failed to parse start time: %w", err)
	}
	stopTime, err := time.Parse(time.RFC3339Nano, stop)
	if err != nil {
		return TrackStatistics{}, fmt.Errorf("failed to parse stop time: %w", err)
	}

	s := New()
	s.startTime = startTime
	s.stopTime = stopTime
	s.totalDistance = units.Meters(distanceM)
	s.totalTime = time.Duration(totalS) * time.Second
	s.movingTime = time.Duration(movingS) * time.Second
	s.maxSpeed = units.Speed(maxSpeedMPS)
	s.totalAltitudeGain = optionalOf(gainM)
	s.totalAltitudeLoss = optionalOf(lossM)
	return s, nil
}
