package endpoints

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	"github.com/Nixie-Tech-LLC/athan/internal/model"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

func PageModule(t Timetable) api.Module {
	ctl := NewPrayerController(t)
	return api.ModuleFunc(func(c *api.Controller) {
		c.Handle(http.MethodGet, "/", ctl.serveAthan)
	})
}

// serveAthan renders today's times on the athan page.
func (p *PrayerController) serveAthan(ctx *gin.Context) {
	settings := p.timetable.Settings()
	now := p.timetable.Now()

	data := model.AthanPageData{
		City:     strings.ToUpper(settings.City),
		Date:     strings.ToUpper(now.Format("January 2, 2006")),
		Timezone: now.Location().String(),
		Method:   string(settings.Config.Method),
		Madhab:   string(settings.Config.Madhab),
	}

	day, err := p.timetable.Today(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get prayer times")
		data.Error = err.Error()
		ctx.HTML(calculationError(err).Code, "athan.html", data)
		return
	}

	nextMarked := false
	for _, e := range day.Times.Entries() {
		row := model.Prayer{
			Name:   strings.ToUpper(e.Name),
			Time:   e.Time.Format("03:04"),
			Period: e.Time.Format("PM"),
			Time24: e.Time.Format(prayer.TimeFormat),
		}
		if !nextMarked && e.Time.After(now) {
			row.Next = true
			nextMarked = true
		}
		data.Prayers = append(data.Prayers, row)
	}

	ctx.HTML(http.StatusOK, "athan.html", data)
}
