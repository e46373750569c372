package timetable

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/athan/internal/db"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
	rediscache "github.com/Nixie-Tech-LLC/athan/internal/redis"
	"github.com/Nixie-Tech-LLC/athan/internal/solar"
)

// countingProvider returns fixed local times of day for any date.
type countingProvider struct {
	calls atomic.Int32
	err   error
}

func (p *countingProvider) Events(_, _ float64, tz *time.Location, date time.Time) (prayer.SolarEvents, error) {
	p.calls.Add(1)
	if p.err != nil {
		return prayer.SolarEvents{}, p.err
	}
	y, m, d := date.In(tz).Date()
	at := func(h, min int) time.Time { return time.Date(y, m, d, h, min, 0, 0, tz) }
	return prayer.SolarEvents{
		Dawn:      at(4, 30),
		Sunrise:   at(6, 0),
		SolarNoon: at(12, 15),
		Sunset:    at(18, 30),
		Dusk:      at(20, 0),
	}, nil
}

var chicago = Settings{
	City:      "Chicago",
	Latitude:  41.8781,
	Longitude: -87.6298,
	Config:    prayer.Config{Method: prayer.MethodStandard, Madhab: prayer.MadhabShafi},
}

func clockAt(t *testing.T, value string) func() time.Time {
	t.Helper()
	tz, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, tz)
	require.NoError(t, err)
	return func() time.Time { return ts }
}

func TestService_DayPersistsAndCaches(t *testing.T) {
	conn, err := db.OpenTestDB()
	require.NoError(t, err)
	defer conn.Close()
	store := db.NewStore(conn)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	provider := &countingProvider{}
	svc, err := New(chicago, solar.StaticResolver("America/Chicago"), provider,
		WithStore(store),
		WithCache(rediscache.NewDayCache(client)),
		WithClock(clockAt(t, "2025-08-05 09:00")),
	)
	require.NoError(t, err)

	ctx := context.Background()
	day, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-08-05", day.Date)
	assert.Equal(t, "Chicago", day.City)
	assert.Equal(t, "America/Chicago", day.Location.Timezone)
	assert.Equal(t, "12:15", day.Times.Map()[prayer.Dhuhr])

	row, err := store.GetPrayerTimes(ctx, "2025-08-05")
	require.NoError(t, err)
	assert.Equal(t, "04:30", row.Fajr)
	assert.Equal(t, "America/Chicago", row.Timezone)

	again, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, day.Times.Format(), again.Times.Format())
	assert.Equal(t, int32(1), provider.calls.Load(), "second call served from cache")

	// the key lives until local midnight
	ttl := mr.TTL(rediscache.Key("2025-08-05", day.Location, day.Config))
	assert.Equal(t, 15*time.Hour, ttl)
}

func TestService_UpdateChangesResult(t *testing.T) {
	svc, err := New(chicago, solar.StaticResolver("America/Chicago"), &countingProvider{},
		WithClock(clockAt(t, "2025-08-05 09:00")))
	require.NoError(t, err)

	updated := chicago
	updated.Config.Method = prayer.MethodMakkah
	require.NoError(t, svc.Update(updated))

	day, err := svc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "20:00", day.Times.Map()[prayer.Isha])
	assert.Equal(t, prayer.MethodMakkah, svc.Settings().Config.Method)
}

func TestService_UpdateKeepsOldSettingsOnError(t *testing.T) {
	svc, err := New(chicago, solar.StaticResolver("America/Chicago"), &countingProvider{})
	require.NoError(t, err)

	svc.resolver = solar.StaticResolver("Nowhere/Nothing")
	err = svc.Update(Settings{City: "Atlantis"})
	assert.True(t, errors.Is(err, prayer.ErrAstronomicalDataUnavailable))
	assert.Equal(t, "Chicago", svc.Settings().City)
}

func TestService_CalculationErrorPropagates(t *testing.T) {
	provider := &countingProvider{err: prayer.ErrAstronomicalDataUnavailable}
	svc, err := New(chicago, solar.StaticResolver("America/Chicago"), provider)
	require.NoError(t, err)

	_, err = svc.Today(context.Background())
	assert.True(t, errors.Is(err, prayer.ErrAstronomicalDataUnavailable))
}

func TestService_Next(t *testing.T) {
	svc, err := New(chicago, solar.StaticResolver("America/Chicago"), &countingProvider{},
		WithClock(clockAt(t, "2025-08-05 12:20")))
	require.NoError(t, err)

	next, err := svc.Next(context.Background())
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, prayer.Asr, next.Name)

	svc.now = clockAt(t, "2025-08-05 22:00")
	next, err = svc.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, next)
}
