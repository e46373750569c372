package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api/prayer/packets"
	"github.com/Nixie-Tech-LLC/athan/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

func SettingsModule(t Timetable) api.Module {
	ctl := NewPrayerController(t)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/settings", ctl.getSettings)
		c.PUT("/settings", ctl.updateSettings)
	})
}

// GET /api/admin/settings
func (p *PrayerController) getSettings(ctx *gin.Context) (any, *api.APIError) {
	return settingsResponse(p.timetable), nil
}

// PUT /api/admin/settings
func (p *PrayerController) updateSettings(ctx *gin.Context) (any, *api.APIError) {
	var req packets.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	settings := p.timetable.Settings()
	if req.City != nil {
		settings.City = *req.City
	}
	if req.Latitude != nil {
		settings.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		settings.Longitude = *req.Longitude
	}
	if req.Method != nil {
		settings.Config.Method = prayer.ParseMethod(*req.Method)
	}
	if req.Madhab != nil {
		madhab, err := prayer.ParseMadhab(*req.Madhab)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}
		settings.Config.Madhab = madhab
	}

	if err := p.timetable.Update(settings); err != nil {
		if errors.Is(err, prayer.ErrAstronomicalDataUnavailable) {
			return nil, &api.APIError{Code: http.StatusUnprocessableEntity, Message: err.Error()}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not apply settings"}
	}

	sub, _ := middleware.CurrentSubject(ctx)
	log.Info().Str("subject", sub).Msg("settings updated")
	return settingsResponse(p.timetable), nil
}

func settingsResponse(t Timetable) packets.SettingsResponse {
	s := t.Settings()
	return packets.SettingsResponse{
		City:      s.City,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Method:    string(s.Config.Method),
		Madhab:    string(s.Config.Madhab),
	}
}
