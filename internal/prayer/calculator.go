package prayer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// SolarEvents are the base astronomical events of a day, localized to the
// location's timezone.
type SolarEvents struct {
	Dawn      time.Time
	Sunrise   time.Time
	SolarNoon time.Time
	Sunset    time.Time
	Dusk      time.Time
}

// SolarPositionProvider computes the solar events for a location and date.
type SolarPositionProvider interface {
	Events(latitude, longitude float64, tz *time.Location, date time.Time) (SolarEvents, error)
}

// TimezoneResolver maps coordinates to an IANA timezone identifier.
type TimezoneResolver interface {
	Resolve(latitude, longitude float64) (string, error)
}

// Calculator computes prayer times for one fixed location and config. The
// timezone is resolved once at construction. Safe for concurrent use.
type Calculator struct {
	location Location
	tz       *time.Location
	config   Config
	provider SolarPositionProvider
}

// NewCalculator resolves the timezone for (latitude, longitude). Coordinates
// are not validated; out-of-range values surface as calculation errors.
func NewCalculator(latitude, longitude float64, cfg Config, resolver TimezoneResolver, provider SolarPositionProvider) (*Calculator, error) {
	name, err := resolver.Resolve(latitude, longitude)
	if err != nil {
		return nil, unavailable(err)
	}
	tz, err := time.LoadLocation(name)
	if err != nil {
		return nil, unavailable(err)
	}
	return &Calculator{
		location: Location{Latitude: latitude, Longitude: longitude, Timezone: name},
		tz:       tz,
		config:   cfg,
		provider: provider,
	}, nil
}

func (c *Calculator) Location() Location { return c.location }
func (c *Calculator) Config() Config     { return c.config }
func (c *Calculator) TZ() *time.Location { return c.tz }

// CalculateTimes returns the prayer times for the calendar date of date.
func (c *Calculator) CalculateTimes(ctx context.Context, date time.Time) (TimeSet, error) {
	if err := ctx.Err(); err != nil {
		return TimeSet{}, err
	}
	return calculate(c.provider, c.location, c.tz, date, c.config)
}

// Calculate is the one-shot form of Calculator.CalculateTimes for a location
// whose timezone is already known.
func Calculate(provider SolarPositionProvider, loc Location, date time.Time, cfg Config) (TimeSet, error) {
	tz, err := time.LoadLocation(loc.Timezone)
	if err != nil {
		return TimeSet{}, unavailable(err)
	}
	return calculate(provider, loc, tz, date, cfg)
}

func calculate(provider SolarPositionProvider, loc Location, tz *time.Location, date time.Time, cfg Config) (TimeSet, error) {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 12, 0, 0, 0, tz)

	ev, err := provider.Events(loc.Latitude, loc.Longitude, tz, day)
	if err != nil {
		return TimeSet{}, unavailable(err)
	}
	for _, t := range []time.Time{ev.Dawn, ev.Sunrise, ev.SolarNoon, ev.Sunset, ev.Dusk} {
		if t.IsZero() {
			return TimeSet{}, fmt.Errorf("%w: incomplete solar events for %s", ErrAstronomicalDataUnavailable, day.Format(time.DateOnly))
		}
	}

	fajr := ev.Dawn.In(tz)
	sunrise := ev.Sunrise.In(tz)
	dhuhr := ev.SolarNoon.In(tz)
	maghrib := ev.Sunset.In(tz)
	isha := ev.Dusk.In(tz)

	asr, err := asrTime(loc.Latitude, dhuhr, cfg.Madhab)
	if err != nil {
		return TimeSet{}, err
	}

	switch cfg.Method {
	case MethodMakkah:
		isha = maghrib.Add(90 * time.Minute)
	case MethodISNA:
		fajr = fajr.Add(-30 * time.Minute)
	default:
		// standard and unrecognized methods keep the base dawn and dusk
	}

	return newTimeSet(fajr, sunrise, dhuhr, asr, maghrib, isha), nil
}

func unavailable(err error) error {
	if errors.Is(err, ErrAstronomicalDataUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrAstronomicalDataUnavailable, err)
}
