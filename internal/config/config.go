package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

// Config holds file- and environment-based settings. Environment variables
// win over the TOML file, which wins over defaults.
type Config struct {
	Environment    string `toml:"environment"`
	LogLevel       string `toml:"log_level"`
	ServerAddress  string `toml:"server_address"`
	DatabaseURL    string `toml:"database_url"`
	MigrationsPath string `toml:"migrations_path"`

	RedisAddress  string `toml:"redis_address"`
	RedisUsername string `toml:"redis_username"`
	RedisPassword string `toml:"redis_password"`

	MQTTBrokerURL        string `toml:"mqtt_broker_url"`
	MQTTTopic            string `toml:"mqtt_topic"`
	DesktopNotifications bool   `toml:"desktop_notifications"`

	JWTSecret string `toml:"jwt_secret"`

	City      string   `toml:"city"`
	Latitude  *float64 `toml:"latitude"`
	Longitude *float64 `toml:"longitude"`
	Timezone  string   `toml:"timezone"` // skips the coordinate lookup when set
	Method    string   `toml:"method"`
	Madhab    string   `toml:"madhab"`
	Twilight  string   `toml:"twilight"`
	Geolocate bool     `toml:"geolocate"`

	PollInterval time.Duration `toml:"-"`
	RawInterval  string        `toml:"poll_interval"`
}

const (
	defaultConfigPath    = "~/.config/athan/config.toml"
	defaultServerAddress = ":8080"
	defaultDatabaseURL   = "file:athan.db"
	defaultMethod        = "standard"
	defaultMadhab        = "shafi"
	defaultTwilight      = "civil"
	defaultMQTTTopic     = "athan/notifications"
	defaultPollInterval  = time.Minute
)

// HasCoordinates reports whether both latitude and longitude are configured.
func (c Config) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Load reads .env (when present), the TOML file at path (default
// ~/.config/athan/config.toml, missing is fine) and the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, assuming environment variables are set directly")
	}

	cfg := &Config{
		ServerAddress: defaultServerAddress,
		DatabaseURL:   defaultDatabaseURL,
		Method:        defaultMethod,
		Madhab:        defaultMadhab,
		Twilight:      defaultTwilight,
		MQTTTopic:     defaultMQTTTopic,
	}

	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.PollInterval = defaultPollInterval
	if raw := strings.TrimSpace(cfg.RawInterval); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid poll interval %q", raw)
		}
		cfg.PollInterval = d
	}

	if (cfg.Latitude != nil) != (cfg.Longitude != nil) {
		return nil, errors.New("LATITUDE and LONGITUDE must be set together")
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultConfigPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("APP_ENV", &cfg.Environment)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("SERVER_ADDRESS", &cfg.ServerAddress)
	str("DATABASE_URL", &cfg.DatabaseURL)
	str("MIGRATIONS_PATH", &cfg.MigrationsPath)
	str("REDIS_ADDRESS", &cfg.RedisAddress)
	str("REDIS_USERNAME", &cfg.RedisUsername)
	str("REDIS_PASSWORD", &cfg.RedisPassword)
	str("MQTT_BROKER_URL", &cfg.MQTTBrokerURL)
	str("MQTT_TOPIC", &cfg.MQTTTopic)
	str("JWT_SECRET", &cfg.JWTSecret)
	str("CITY", &cfg.City)
	str("TIMEZONE", &cfg.Timezone)
	str("METHOD", &cfg.Method)
	str("MADHAB", &cfg.Madhab)
	str("TWILIGHT", &cfg.Twilight)
	str("POLL_INTERVAL", &cfg.RawInterval)

	for key, dst := range map[string]**float64{"LATITUDE": &cfg.Latitude, "LONGITUDE": &cfg.Longitude} {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = &f
	}

	for key, dst := range map[string]*bool{"DESKTOP_NOTIFICATIONS": &cfg.DesktopNotifications, "GEOLOCATE": &cfg.Geolocate} {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		*dst = b
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
