package trackpoint

import (
	"testing"
	"time"

	"github.com/banshee-data/trackstats/internal/geo"
	"github.com/stretchr/testify/assert"
)

func TestOptionalReadings(t *testing.T) {
	var empty TrackPoint
	assert.False(t, empty.HasPosition())
	assert.False(t, empty.HasAltitude())
	assert.False(t, empty.HasSpeed())
	assert.False(t, empty.HasHeartRate())
	assert.Equal(t, 0.0, empty.SpeedOrZero().ToMPS())
	assert.Equal(t, 0.0, empty.AltitudeGainOrZero())
	assert.Equal(t, 0.0, empty.AltitudeLossOrZero())

	full := TrackPoint{
		Position:     &geo.Point{Lat: 46.1, Lon: 7.2},
		Altitude:     Float(2100),
		AltitudeGain: Float(12),
		AltitudeLoss: Float(0.5),
		Speed:        SpeedPtr(1.5),
		HeartRate:    HeartRatePtr(128),
	}
	assert.True(t, full.HasPosition())
	assert.True(t, full.HasAltitudeGain())
	assert.True(t, full.HasAltitudeLoss())
	assert.Equal(t, 1.5, full.SpeedOrZero().ToMPS())
	assert.Equal(t, 12.0, full.AltitudeGainOrZero())
	assert.Equal(t, 0.5, full.AltitudeLossOrZero())
}

func TestElapsed(t *testing.T) {
	t0 := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)
	a := &TrackPoint{Time: t0}
	b := &TrackPoint{Time: t0.Add(45 * time.Second)}

	assert.Equal(t, 45*time.Second, Elapsed(a, b))
	assert.Equal(t, -45*time.Second, Elapsed(b, a))
}
