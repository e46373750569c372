package solar

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/sixdouglas/suncalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

func TestSuncalcProvider_EventsOrdered(t *testing.T) {
	tz, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	p := NewSuncalcProvider(Civil)
	ev, err := p.Events(41.8781, -87.6298, tz, time.Date(2025, 8, 5, 0, 0, 0, 0, tz))
	require.NoError(t, err)

	assert.True(t, ev.Dawn.Before(ev.Sunrise))
	assert.True(t, ev.Sunrise.Before(ev.SolarNoon))
	assert.True(t, ev.SolarNoon.Before(ev.Sunset))
	assert.True(t, ev.Sunset.Before(ev.Dusk))
	assert.Equal(t, tz, ev.SolarNoon.Location())
	assert.Equal(t, 2025, ev.SolarNoon.Year())
	assert.Equal(t, time.August, ev.SolarNoon.Month())
	assert.Equal(t, 5, ev.SolarNoon.Day())
}

func TestSuncalcProvider_TwilightDepth(t *testing.T) {
	date := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	civil, err := NewSuncalcProvider(Civil).Events(30, 0, time.UTC, date)
	require.NoError(t, err)
	nautical, err := NewSuncalcProvider(Nautical).Events(30, 0, time.UTC, date)
	require.NoError(t, err)
	astro, err := NewSuncalcProvider(Astronomical).Events(30, 0, time.UTC, date)
	require.NoError(t, err)

	assert.True(t, astro.Dawn.Before(nautical.Dawn))
	assert.True(t, nautical.Dawn.Before(civil.Dawn))
	assert.True(t, civil.Dusk.Before(nautical.Dusk))
	assert.True(t, nautical.Dusk.Before(astro.Dusk))
}

func TestSuncalcProvider_PolarConditions(t *testing.T) {
	p := NewSuncalcProvider(Civil)

	_, err := p.Events(70, 25, time.UTC, time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC))
	assert.True(t, errors.Is(err, prayer.ErrAstronomicalDataUnavailable), "midnight sun")

	_, err = p.Events(80, 25, time.UTC, time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC))
	assert.True(t, errors.Is(err, prayer.ErrAstronomicalDataUnavailable), "polar night")

	// sun sets at 55N in June but astronomical twilight never ends
	_, err = NewSuncalcProvider(Civil).Events(55, 0, time.UTC, time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	_, err = NewSuncalcProvider(Astronomical).Events(55, 0, time.UTC, time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC))
	assert.True(t, errors.Is(err, prayer.ErrAstronomicalDataUnavailable))
}

func TestParseTwilight(t *testing.T) {
	tw, err := ParseTwilight("")
	require.NoError(t, err)
	assert.Equal(t, Civil, tw)

	tw, err = ParseTwilight(" Astronomical ")
	require.NoError(t, err)
	assert.Equal(t, Astronomical, tw)

	_, err = ParseTwilight("golden")
	assert.True(t, errors.Is(err, prayer.ErrInvalidConfig))
}

func TestTwilightKeys_MatchSuncalcEvents(t *testing.T) {
	cases := []struct {
		twilight   Twilight
		dawn, dusk suncalc.DayTimeName
	}{
		{Civil, suncalc.Dawn, suncalc.Dusk},
		{Nautical, suncalc.NauticalDawn, suncalc.NauticalDusk},
		{Astronomical, suncalc.NightEnd, suncalc.Night},
	}
	times := suncalc.GetTimes(time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC), 21.4, 39.8)
	for _, tc := range cases {
		dawn, dusk := tc.twilight.keys()
		assert.Equal(t, tc.dawn, dawn, tc.twilight)
		assert.Equal(t, tc.dusk, dusk, tc.twilight)
		assert.False(t, times[dawn].Value.IsZero(), "%s dawn missing", tc.twilight)
		assert.False(t, times[dusk].Value.IsZero(), "%s dusk missing", tc.twilight)
	}
}
