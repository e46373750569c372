package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api/prayer/packets"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
	"github.com/Nixie-Tech-LLC/athan/internal/timetable"
)

func PrayerTimesModule(t Timetable) api.Module {
	ctl := NewPrayerController(t)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/prayer-times", ctl.getPrayerTimes)
		c.GET("/next", ctl.getNextPrayer)
	})
}

// GET /api/prayer-times?date=YYYY-MM-DD
func (p *PrayerController) getPrayerTimes(ctx *gin.Context) (any, *api.APIError) {
	var query packets.PrayerTimesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	var (
		day timetable.Day
		err error
	)
	if query.Date == "" {
		day, err = p.timetable.Today(ctx)
	} else {
		date, perr := time.Parse(time.DateOnly, query.Date)
		if perr != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "date must be YYYY-MM-DD"}
		}
		day, err = p.timetable.Day(ctx, date)
	}
	if err != nil {
		log.Error().Err(err).Str("date", query.Date).Msg("prayer time calculation failed")
		return nil, calculationError(err)
	}

	return toResponse(day), nil
}

// GET /api/next
func (p *PrayerController) getNextPrayer(ctx *gin.Context) (any, *api.APIError) {
	next, err := p.timetable.Next(ctx)
	if err != nil {
		log.Error().Err(err).Msg("next prayer lookup failed")
		return nil, calculationError(err)
	}

	now := p.timetable.Now()
	resp := packets.NextPrayerResponse{Date: now.Format(time.DateOnly)}
	if next == nil {
		resp.Done = true
		return resp, nil
	}
	resp.Name = next.Name
	resp.Time = next.Time.Format(prayer.TimeFormat)
	resp.Minutes = int(next.Time.Sub(now).Minutes())
	return resp, nil
}

func toResponse(day timetable.Day) packets.PrayerTimesResponse {
	formatted := day.Times.Format()
	timings := make([]packets.Timing, len(formatted))
	for i, f := range formatted {
		timings[i] = packets.Timing{Name: f.Name, Time: f.Time}
	}
	return packets.PrayerTimesResponse{
		Date:      day.Date,
		City:      day.City,
		Timezone:  day.Location.Timezone,
		Method:    string(day.Config.Method),
		Madhab:    string(day.Config.Madhab),
		Latitude:  day.Location.Latitude,
		Longitude: day.Location.Longitude,
		Timings:   timings,
	}
}
