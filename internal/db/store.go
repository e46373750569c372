// exposes a Store interface that is passed to the http and timetable layers
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

var ErrNotFound = errors.New("prayer times not found")

// Store is the persistence gateway for computed days. At most one row is kept
// per date; writing a date again overwrites it.
type Store interface {
	UpsertPrayerTimes(ctx context.Context, date string, set prayer.TimeSet, loc prayer.Location, cfg prayer.Config) error
	GetPrayerTimes(ctx context.Context, date string) (model.PrayerDay, error)
}

type sqlStore struct {
	db *sqlx.DB
}

// compile-time check that sqlStore implements Store
var _ Store = (*sqlStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) UpsertPrayerTimes(ctx context.Context, date string, set prayer.TimeSet, loc prayer.Location, cfg prayer.Config) error {
	t := set.Map()
	row := model.PrayerDay{
		Date:      date,
		Fajr:      t[prayer.Fajr],
		Sunrise:   t[prayer.Sunrise],
		Dhuhr:     t[prayer.Dhuhr],
		Asr:       t[prayer.Asr],
		Maghrib:   t[prayer.Maghrib],
		Isha:      t[prayer.Isha],
		Method:    string(cfg.Method),
		Madhab:    string(cfg.Madhab),
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Timezone:  loc.Timezone,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	const q = `
	INSERT INTO prayer_times
	  (date, fajr, sunrise, dhuhr, asr, maghrib, isha, method, madhab, latitude, longitude, timezone, updated_at)
	VALUES
	  (:date, :fajr, :sunrise, :dhuhr, :asr, :maghrib, :isha, :method, :madhab, :latitude, :longitude, :timezone, :updated_at)
	ON CONFLICT (date) DO UPDATE SET
	  fajr = excluded.fajr,
	  sunrise = excluded.sunrise,
	  dhuhr = excluded.dhuhr,
	  asr = excluded.asr,
	  maghrib = excluded.maghrib,
	  isha = excluded.isha,
	  method = excluded.method,
	  madhab = excluded.madhab,
	  latitude = excluded.latitude,
	  longitude = excluded.longitude,
	  timezone = excluded.timezone,
	  updated_at = excluded.updated_at;`
	if _, err := s.db.NamedExecContext(ctx, q, row); err != nil {
		log.Error().Err(err).Str("date", date).Msg("UpsertPrayerTimes failed")
		return fmt.Errorf("upsert prayer times %s: %w", date, err)
	}
	return nil
}

func (s *sqlStore) GetPrayerTimes(ctx context.Context, date string) (model.PrayerDay, error) {
	var day model.PrayerDay
	q := s.db.Rebind(`
	SELECT date, fajr, sunrise, dhuhr, asr, maghrib, isha, method, madhab, latitude, longitude, timezone, updated_at
	  FROM prayer_times
	 WHERE date = ?;`)
	err := s.db.GetContext(ctx, &day, q, date)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PrayerDay{}, ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("GetPrayerTimes failed")
		return model.PrayerDay{}, fmt.Errorf("get prayer times %s: %w", date, err)
	}
	return day, nil
}
