package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/config"
	"github.com/Nixie-Tech-LLC/athan/internal/db"
	"github.com/Nixie-Tech-LLC/athan/internal/notify"
	rediscache "github.com/Nixie-Tech-LLC/athan/internal/redis"
	"github.com/Nixie-Tech-LLC/athan/internal/timetable"
)

// InitStorage opens the database, applies migrations and wires the optional
// redis day cache into the timetable options.
func InitStorage(ctx context.Context, cfg *config.Config) []timetable.Option {
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	if err := db.RunMigrations(db.DB, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}
	opts := []timetable.Option{timetable.WithStore(db.NewStore(db.DB))}

	if cfg.RedisAddress == "" {
		log.Info().Msg("REDIS_ADDRESS not set, day cache disabled")
		return opts
	}
	rediscache.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rediscache.Rdb.Ping(pingCtx).Err(); err != nil {
		// the service treats cache failures as misses, so keep going
		log.Warn().Err(err).Str("address", cfg.RedisAddress).Msg("redis unreachable")
	} else {
		log.Info().Str("address", cfg.RedisAddress).Msg("using redis day cache")
	}
	return append(opts, timetable.WithCache(rediscache.NewDayCache(rediscache.Rdb)))
}

// InitNotifiers builds the dispatcher from the configured channels. The
// returned func releases broker connections.
func InitNotifiers(cfg *config.Config) (*notify.Dispatcher, func()) {
	var notifiers []notify.Notifier
	cleanup := func() {}

	if cfg.MQTTBrokerURL != "" {
		client, err := notify.CreateMQTTClient(cfg.MQTTBrokerURL, "athan-server")
		if err != nil {
			log.Error().Err(err).Str("broker", cfg.MQTTBrokerURL).Msg("mqtt notifications disabled")
		} else {
			mqttNotifier := notify.NewMQTTNotifier(client, cfg.MQTTTopic)
			notifiers = append(notifiers, mqttNotifier)
			cleanup = mqttNotifier.Close
			log.Info().Str("topic", cfg.MQTTTopic).Msg("publishing notifications over mqtt")
		}
	}
	if cfg.DesktopNotifications {
		notifiers = append(notifiers, notify.NewDesktopNotifier(""))
		log.Info().Msg("desktop notifications enabled")
	}
	if len(notifiers) == 0 {
		log.Warn().Msg("no notification channel configured, prayers will only be logged")
	}
	return notify.NewDispatcher(notifiers...), cleanup
}
