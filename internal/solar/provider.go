// Package solar adapts suncalc and tzf to the prayer calculator.
package solar

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

// Twilight picks which sun depression is used for dawn and dusk.
type Twilight string

const (
	Civil        Twilight = "civil"
	Nautical     Twilight = "nautical"
	Astronomical Twilight = "astronomical"
)

// altitude of the sun's centre at sunrise/sunset, refraction included
const horizonAngle = -0.833

func ParseTwilight(s string) (Twilight, error) {
	switch Twilight(strings.ToLower(strings.TrimSpace(s))) {
	case "", Civil:
		return Civil, nil
	case Nautical:
		return Nautical, nil
	case Astronomical:
		return Astronomical, nil
	default:
		return "", fmt.Errorf("%w: unknown twilight %q", prayer.ErrInvalidConfig, s)
	}
}

func (t Twilight) angle() float64 {
	switch t {
	case Nautical:
		return -12
	case Astronomical:
		return -18
	default:
		return -6
	}
}

func (t Twilight) keys() (dawn, dusk suncalc.DayTimeName) {
	switch t {
	case Nautical:
		return suncalc.NauticalDawn, suncalc.NauticalDusk
	case Astronomical:
		return suncalc.NightEnd, suncalc.Night
	default:
		return suncalc.Dawn, suncalc.Dusk
	}
}

// SuncalcProvider implements prayer.SolarPositionProvider on top of suncalc.
type SuncalcProvider struct {
	Twilight Twilight
}

func NewSuncalcProvider(t Twilight) *SuncalcProvider {
	return &SuncalcProvider{Twilight: t}
}

// Events returns the solar events around local noon of date. Polar day or
// night, where the sun never crosses the horizon or the twilight angle, is
// reported as prayer.ErrAstronomicalDataUnavailable.
func (p *SuncalcProvider) Events(latitude, longitude float64, tz *time.Location, date time.Time) (prayer.SolarEvents, error) {
	y, m, d := date.In(tz).Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, tz)

	times := suncalc.GetTimes(noon, latitude, longitude)
	solarNoon := times[suncalc.SolarNoon].Value
	if !plausible(solarNoon, noon) {
		return prayer.SolarEvents{}, fmt.Errorf("%w: no solar noon at %.4f,%.4f on %s",
			prayer.ErrAstronomicalDataUnavailable, latitude, longitude, noon.Format(time.DateOnly))
	}

	noonAlt := altitude(solarNoon, latitude, longitude)
	nadirAlt := altitude(solarNoon.Add(12*time.Hour), latitude, longitude)
	for _, a := range []struct {
		name  string
		angle float64
	}{{"sunrise/sunset", horizonAngle}, {string(p.twilight()) + " twilight", p.twilight().angle()}} {
		if noonAlt <= a.angle || nadirAlt >= a.angle {
			return prayer.SolarEvents{}, fmt.Errorf("%w: no %s at %.4f,%.4f on %s",
				prayer.ErrAstronomicalDataUnavailable, a.name, latitude, longitude, noon.Format(time.DateOnly))
		}
	}

	dawnKey, duskKey := p.twilight().keys()
	ev := prayer.SolarEvents{
		Dawn:      times[dawnKey].Value.In(tz),
		Sunrise:   times[suncalc.Sunrise].Value.In(tz),
		SolarNoon: solarNoon.In(tz),
		Sunset:    times[suncalc.Sunset].Value.In(tz),
		Dusk:      times[duskKey].Value.In(tz),
	}
	for _, t := range []time.Time{ev.Dawn, ev.Sunrise, ev.Sunset, ev.Dusk} {
		if !plausible(t, noon) {
			return prayer.SolarEvents{}, fmt.Errorf("%w: solar events out of range at %.4f,%.4f on %s",
				prayer.ErrAstronomicalDataUnavailable, latitude, longitude, noon.Format(time.DateOnly))
		}
	}
	return ev, nil
}

func (p *SuncalcProvider) twilight() Twilight {
	if p.Twilight == "" {
		return Civil
	}
	return p.Twilight
}

// altitude in degrees
func altitude(t time.Time, latitude, longitude float64) float64 {
	return suncalc.GetPosition(t, latitude, longitude).Altitude * 180 / math.Pi
}

func plausible(t, noon time.Time) bool {
	if t.IsZero() {
		return false
	}
	diff := t.Sub(noon)
	return diff > -24*time.Hour && diff < 24*time.Hour
}
