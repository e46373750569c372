package main

import (
	"html/template"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/config"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	prayerapi "github.com/Nixie-Tech-LLC/athan/internal/http/api/prayer/endpoints"
	"github.com/Nixie-Tech-LLC/athan/internal/http/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, timetable prayerapi.Timetable, tmpl *template.Template) {
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.RequestLogger())
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"PUT",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.MountGroup(r, api.GroupConfig{
		Prefix: "",
	},
		prayerapi.PageModule(timetable),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		prayerapi.PrayerTimesModule(timetable),
	)

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set, admin settings endpoints disabled")
		return
	}
	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
	},
		prayerapi.SettingsModule(timetable),
	)
}
