// Package timetable ties the prayer calculator to the daily cache and the
// persistence gateway. The web handlers and the scheduler both go through it.
package timetable

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/db"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
	rediscache "github.com/Nixie-Tech-LLC/athan/internal/redis"
)

// Settings is the active location and calculation config.
type Settings struct {
	City      string
	Latitude  float64
	Longitude float64
	Config    prayer.Config
}

// Cache is the subset of the redis day cache the service needs.
type Cache interface {
	Get(ctx context.Context, key string) (rediscache.CachedDay, bool, error)
	Set(ctx context.Context, key string, day rediscache.CachedDay, expiration time.Duration) error
}

// Day is one computed day.
type Day struct {
	Date     string
	City     string
	Location prayer.Location
	Config   prayer.Config
	Times    prayer.TimeSet
}

type Option func(*Service)

func WithStore(store db.Store) Option { return func(s *Service) { s.store = store } }
func WithCache(cache Cache) Option    { return func(s *Service) { s.cache = cache } }
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

type Service struct {
	resolver prayer.TimezoneResolver
	provider prayer.SolarPositionProvider
	store    db.Store
	cache    Cache
	now      func() time.Time

	mu       sync.RWMutex
	settings Settings
	calc     *prayer.Calculator
}

func New(settings Settings, resolver prayer.TimezoneResolver, provider prayer.SolarPositionProvider, opts ...Option) (*Service, error) {
	s := &Service{
		resolver: resolver,
		provider: provider,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Update(settings); err != nil {
		return nil, err
	}
	return s, nil
}

// Update swaps in new settings. On error the previous settings stay active.
func (s *Service) Update(settings Settings) error {
	calc, err := prayer.NewCalculator(settings.Latitude, settings.Longitude, settings.Config, s.resolver, s.provider)
	if err != nil {
		return fmt.Errorf("apply settings: %w", err)
	}

	s.mu.Lock()
	s.settings = settings
	s.calc = calc
	s.mu.Unlock()

	log.Info().
		Str("city", settings.City).
		Float64("latitude", settings.Latitude).
		Float64("longitude", settings.Longitude).
		Str("timezone", calc.Location().Timezone).
		Str("method", string(settings.Config.Method)).
		Str("madhab", string(settings.Config.Madhab)).
		Msg("prayer settings applied")
	return nil
}

func (s *Service) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Service) current() (Settings, *prayer.Calculator) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, s.calc
}

// Now is the current time in the configured location's timezone.
func (s *Service) Now() time.Time {
	_, calc := s.current()
	return s.now().In(calc.TZ())
}

func (s *Service) Today(ctx context.Context) (Day, error) {
	return s.Day(ctx, s.Now())
}

// Day returns the prayer times for the calendar date of date, from the cache
// when possible. Fresh results are written to the store and the cache; their
// failures are logged and don't fail the call.
func (s *Service) Day(ctx context.Context, date time.Time) (Day, error) {
	settings, calc := s.current()
	y, m, d := date.Date()
	local := time.Date(y, m, d, 0, 0, 0, 0, calc.TZ())
	dateStr := local.Format(time.DateOnly)
	loc := calc.Location()
	cfg := calc.Config()
	key := rediscache.Key(dateStr, loc, cfg)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("cache lookup failed")
		} else if ok {
			return Day{Date: dateStr, City: settings.City, Location: loc, Config: cfg, Times: cached.Times}, nil
		}
	}

	set, err := calc.CalculateTimes(ctx, local)
	if err != nil {
		return Day{}, err
	}

	if s.store != nil {
		if err := s.store.UpsertPrayerTimes(ctx, dateStr, set, loc, cfg); err != nil {
			log.Error().Err(err).Str("date", dateStr).Msg("persisting prayer times failed")
		}
	}
	if s.cache != nil {
		ttl := local.AddDate(0, 0, 1).Sub(s.now())
		if ttl <= 0 {
			ttl = time.Hour
		}
		day := rediscache.CachedDay{Location: loc, Method: string(cfg.Method), Madhab: string(cfg.Madhab), Times: set}
		if err := s.cache.Set(ctx, key, day, ttl); err != nil {
			log.Error().Err(err).Str("key", key).Msg("cache write failed")
		}
	}

	return Day{Date: dateStr, City: settings.City, Location: loc, Config: cfg, Times: set}, nil
}

// Next returns the first prayer of today that is still ahead of now, or nil
// once Isha has passed.
func (s *Service) Next(ctx context.Context) (*prayer.Entry, error) {
	now := s.Now()
	day, err := s.Day(ctx, now)
	if err != nil {
		return nil, err
	}
	for _, e := range day.Times.Entries() {
		if e.Time.After(now) {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}
