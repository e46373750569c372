package endpoints

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
	"github.com/Nixie-Tech-LLC/athan/internal/timetable"
)

// Timetable is what the handlers need from timetable.Service.
type Timetable interface {
	Day(ctx context.Context, date time.Time) (timetable.Day, error)
	Today(ctx context.Context) (timetable.Day, error)
	Next(ctx context.Context) (*prayer.Entry, error)
	Now() time.Time
	Settings() timetable.Settings
	Update(settings timetable.Settings) error
}

type PrayerController struct {
	timetable Timetable
}

func NewPrayerController(t Timetable) *PrayerController {
	return &PrayerController{timetable: t}
}

// calculationError maps core errors onto HTTP status codes.
func calculationError(err error) *api.APIError {
	switch {
	case errors.Is(err, prayer.ErrInvalidConfig):
		return &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, prayer.ErrAstronomicalDataUnavailable), errors.Is(err, prayer.ErrAsrUndefinedAtLatitude):
		return &api.APIError{Code: http.StatusUnprocessableEntity, Message: err.Error()}
	default:
		return &api.APIError{Code: http.StatusInternalServerError, Message: "failed to calculate prayer times"}
	}
}
