package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// CachedDay is what gets stored for one computed day.
type CachedDay struct {
	Location prayer.Location `json:"location"`
	Method   string          `json:"method"`
	Madhab   string          `json:"madhab"`
	Times    prayer.TimeSet  `json:"times"`
}

// DayCache keeps computed days in redis until they go stale.
type DayCache struct {
	client *redis.Client
}

func NewDayCache(client *redis.Client) *DayCache {
	return &DayCache{client: client}
}

// Key identifies a day for one location and config so settings changes
// never serve stale rows.
func Key(date string, loc prayer.Location, cfg prayer.Config) string {
	return fmt.Sprintf("athan:day:%s:%.4f:%.4f:%s:%s", date, loc.Latitude, loc.Longitude, cfg.Method, cfg.Madhab)
}

func (c *DayCache) Set(ctx context.Context, key string, day CachedDay, expiration time.Duration) error {
	payload, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("encode cached day: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to add day to redis")
		return err
	}
	return nil
}

// Get returns ok=false on a miss.
func (c *DayCache) Get(ctx context.Context, key string) (CachedDay, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return CachedDay{}, false, nil
	}
	if err != nil {
		return CachedDay{}, false, err
	}
	var day CachedDay
	if err := json.Unmarshal(payload, &day); err != nil {
		return CachedDay{}, false, fmt.Errorf("decode cached day %s: %w", key, err)
	}
	return day, true, nil
}
