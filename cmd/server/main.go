package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/config"
	"github.com/Nixie-Tech-LLC/athan/internal/geo"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
	"github.com/Nixie-Tech-LLC/athan/internal/scheduler"
	"github.com/Nixie-Tech-LLC/athan/internal/solar"
	"github.com/Nixie-Tech-LLC/athan/internal/timetable"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg := LoadEnvironment(*configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prayerCfg, err := prayer.ParseConfig(cfg.Method, cfg.Madhab)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid calculation config")
	}
	twilight, err := solar.ParseTwilight(cfg.Twilight)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid twilight")
	}

	settings, resolver := resolveLocation(ctx, cfg)
	settings.Config = prayerCfg

	opts := InitStorage(ctx, cfg)
	svc, err := timetable.New(settings, resolver, solar.NewSuncalcProvider(twilight), opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build timetable")
	}
	log.Info().
		Str("city", settings.City).
		Float64("latitude", settings.Latitude).
		Float64("longitude", settings.Longitude).
		Str("method", string(prayerCfg.Method)).
		Str("madhab", string(prayerCfg.Madhab)).
		Msg("prayer timetable ready")

	dispatcher, closeNotifiers := InitNotifiers(cfg)
	defer closeNotifiers()

	sched := scheduler.New(svc, dispatcher, cfg.PollInterval)
	if err := sched.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, cfg, svc, LoadTemplates())

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: r,
	}
	go func() {
		log.Info().Str("address", cfg.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}

// resolveLocation picks configured coordinates, falling back to IP
// geolocation when GEOLOCATE is on. Without either the server does not start.
func resolveLocation(ctx context.Context, cfg *config.Config) (timetable.Settings, prayer.TimezoneResolver) {
	var settings timetable.Settings
	var zone string

	switch {
	case cfg.HasCoordinates():
		settings.City = cfg.City
		settings.Latitude = *cfg.Latitude
		settings.Longitude = *cfg.Longitude
		zone = cfg.Timezone
	case cfg.Geolocate:
		lookupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		loc, err := geo.NewClient().Locate(lookupCtx)
		if err != nil {
			log.Fatal().Err(err).Msg("geolocation failed and no coordinates configured")
		}
		settings.City = loc.City
		if cfg.City != "" {
			settings.City = cfg.City
		}
		settings.Latitude = loc.Latitude
		settings.Longitude = loc.Longitude
		zone = cfg.Timezone
		if zone == "" {
			zone = loc.Timezone
		}
		log.Info().Str("city", loc.City).Str("country", loc.Country).Msg("location from ip geolocation")
	default:
		log.Fatal().Msg("set LATITUDE and LONGITUDE or enable GEOLOCATE")
	}

	if zone != "" {
		return settings, solar.StaticResolver(zone)
	}
	resolver, err := solar.NewTZFResolver()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load timezone finder")
	}
	return settings, resolver
}
