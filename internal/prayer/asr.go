package prayer

import (
	"fmt"
	"math"
	"time"
)

const (
	earthTilt = 23.45
	// day 81 is roughly the March equinox, where declination crosses zero
	equinoxDay = 81
)

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// declination approximates the solar declination in degrees with a single
// harmonic over the year.
func declination(dayOfYear int) float64 {
	return degrees(math.Asin(math.Sin(radians(earthTilt)) *
		math.Sin(radians(360/365.25*float64(dayOfYear-equinoxDay)))))
}

// asrHourAngle returns the hour angle in degrees past solar noon at which an
// object's shadow equals coefficient times its height plus its noon shadow.
func asrHourAngle(latitude float64, dayOfYear int, coefficient float64) (float64, error) {
	decl := declination(dayOfYear)
	noonZenith := math.Abs(latitude - decl)
	altitude := math.Atan(1 / (coefficient + math.Tan(radians(noonZenith))))

	lat, d := radians(latitude), radians(decl)
	arg := (math.Sin(altitude) - math.Sin(lat)*math.Sin(d)) / (math.Cos(lat) * math.Cos(d))
	if math.IsNaN(arg) || arg < -1 || arg > 1 {
		return 0, fmt.Errorf("%w: latitude %.4f day %d (arccos argument %.4f)",
			ErrAsrUndefinedAtLatitude, latitude, dayOfYear, arg)
	}
	return degrees(math.Acos(arg)), nil
}

func asrTime(latitude float64, solarNoon time.Time, madhab Madhab) (time.Time, error) {
	h, err := asrHourAngle(latitude, solarNoon.YearDay(), madhab.shadowCoefficient())
	if err != nil {
		return time.Time{}, err
	}
	return solarNoon.Add(time.Duration(h / 15 * float64(time.Hour))), nil
}
