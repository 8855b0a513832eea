package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackstats/internal/testutil"
	"github.com/banshee-data/trackstats/internal/trackpoint"
	"github.com/banshee-data/trackstats/internal/units"
)

func TestEqual(t *testing.T) {
	base := func() TrackStatistics {
		s := mustNewForTest(t, "2024-02-03T09:00:00Z", "2024-02-03T09:10:00Z", 1500, 600, 500, 8, trackpoint.Float(120), nil)
		s.UpdateAltitudeExtremities(trackpoint.Float(1500))
		return s
	}

	tests := []struct {
		name   string
		mutate func(s *TrackStatistics)
		want   bool
	}{
		{"identical", func(*TrackStatistics) {}, true},
		{"distance", func(s *TrackStatistics) { s.AddTotalDistance(1) }, false},
		{"gain zero versus unset", func(s *TrackStatistics) { s.SetTotalAltitudeLoss(trackpoint.Float(0)) }, false},
		{"heart rate", func(s *TrackStatistics) { s.SetAverageHeartRate(trackpoint.HeartRatePtr(100)) }, false},
		{"altitude", func(s *TrackStatistics) { s.UpdateAltitudeExtremities(trackpoint.Float(1400)) }, false},
		{"idle", func(s *TrackStatistics) { s.SetIdle(true) }, false},
		{"transient position ignored", func(s *TrackStatistics) { s.SetUserPosition(liftBase) }, true},
		{"armed activity ignored", func(s *TrackStatistics) { s.StartChairliftActivity(testutil.At(0), 1500) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := base(), base()
			tt.mutate(&b)
			assert.Equal(t, tt.want, a.Equal(b))
			assert.Equal(t, tt.want, b.Equal(a))
		})
	}
}

func TestEqual_InvalidSpeeds(t *testing.T) {
	a, b := New(), New()
	a.SetMaxSpeed(units.InvalidSpeed())
	b.SetMaxSpeed(units.InvalidSpeed())
	assert.True(t, a.Equal(b))
}

func TestString(t *testing.T) {
	s := New()
	got := s.String()
	assert.Contains(t, got, "start: unset")
	assert.Contains(t, got, "altitude gain: unset")
	assert.Contains(t, got, "average heart rate: unset")

	s, err := NewForTest("2024-02-03T09:00:00Z", "2024-02-03T09:10:00Z", 1500, 600, 500, 8, trackpoint.Float(120), trackpoint.Float(0))
	require.NoError(t, err)
	s.SetAverageHeartRate(trackpoint.HeartRatePtr(131))

	got = s.String()
	assert.Contains(t, got, "start: 2024-02-03T09:00:00Z")
	assert.Contains(t, got, "distance: 1500m")
	assert.Contains(t, got, "total time: 10m0s")
	assert.Contains(t, got, "altitude gain: 120m")
	assert.Contains(t, got, "altitude loss: 0m")
	assert.Contains(t, got, "average heart rate: 131bpm")
}

func TestNewForTest_BadTimes(t *testing.T) {
	_, err := NewForTest("yesterday", "2024-02-03T09:10:00Z", 0, 0, 0, 0, nil, nil)
	assert.Error(t, err)
	_, err = NewForTest("2024-02-03T09:10:00Z", "later", 0, 0, 0, 0, nil, nil)
	assert.Error(t, err)
}
