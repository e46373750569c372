package prayer

import "errors"

var (
	// ErrAstronomicalDataUnavailable is returned when the sun position or the
	// timezone for a location cannot be determined (polar day/night, open ocean).
	ErrAstronomicalDataUnavailable = errors.New("astronomical data unavailable")

	// ErrAsrUndefinedAtLatitude is returned when the Asr hour angle has no
	// solution for the latitude and date.
	ErrAsrUndefinedAtLatitude = errors.New("asr undefined at latitude")

	// ErrInvalidConfig is returned for an unrecognized madhab.
	ErrInvalidConfig = errors.New("invalid calculation config")
)
