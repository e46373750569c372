package prayer

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclination(t *testing.T) {
	assert.InDelta(t, 0, declination(81), 1e-9)
	// June solstice peaks near the tilt, December near minus the tilt
	assert.InDelta(t, earthTilt, declination(172), 0.1)
	assert.InDelta(t, -earthTilt, declination(355), 0.2)
}

func TestAsrHourAngle_HanafiIsLater(t *testing.T) {
	for _, lat := range []float64{-55, -30, 0, 21.4, 41.9, 55} {
		for _, day := range []int{1, 81, 172, 266, 355} {
			shafi, err := asrHourAngle(lat, day, 1)
			require.NoError(t, err)
			hanafi, err := asrHourAngle(lat, day, 2)
			require.NoError(t, err)
			assert.Greater(t, hanafi, shafi, "lat=%v day=%d", lat, day)
		}
	}
}

func TestAsrHourAngle_EquatorAtEquinox(t *testing.T) {
	// sun overhead at noon: shadow equals height when altitude is 45 degrees
	h, err := asrHourAngle(0, 81, 1)
	require.NoError(t, err)
	assert.InDelta(t, 45, h, 1e-9)
}

func TestAsrHourAngle_OutOfDomain(t *testing.T) {
	_, err := asrHourAngle(89.9, 172, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAsrUndefinedAtLatitude))

	_, err = asrHourAngle(90, 172, 1)
	assert.True(t, errors.Is(err, ErrAsrUndefinedAtLatitude))

	_, err = asrHourAngle(math.NaN(), 172, 1)
	assert.True(t, errors.Is(err, ErrAsrUndefinedAtLatitude))
}

func TestAsrTime_AddsHourAngle(t *testing.T) {
	noon := time.Date(2025, 3, 22, 12, 0, 0, 0, time.UTC) // day 81
	asr, err := asrTime(0, noon, MadhabShafi)
	require.NoError(t, err)
	assert.WithinDuration(t, noon.Add(3*time.Hour), asr, time.Second)
}
