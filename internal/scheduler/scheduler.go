// Package scheduler polls the clock and announces prayers as they arrive.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/notify"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
	"github.com/Nixie-Tech-LLC/athan/internal/timetable"
)

const DefaultInterval = time.Minute

var ErrAlreadyRunning = errors.New("scheduler already running")

// Source provides the day's prayer times and the local clock.
type Source interface {
	Day(ctx context.Context, date time.Time) (timetable.Day, error)
	Now() time.Time
}

type Dispatcher interface {
	Dispatch(ctx context.Context, n notify.Notification) (bool, error)
}

type Scheduler struct {
	source     Source
	dispatcher Dispatcher
	interval   time.Duration

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
	lastTick time.Time
}

func New(source Source, dispatcher Dispatcher, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{source: source, dispatcher: dispatcher, interval: interval}
}

// Start launches the polling task in the background. It stops when ctx is
// cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}
	s.running = true
	s.stopChan = make(chan struct{})

	task := NewPeriodicTask("prayer-notifications", 0, s.interval, func(ctx context.Context) {
		if _, err := s.Tick(ctx, s.source.Now()); err != nil {
			log.Error().Err(err).Msg("prayer notification tick failed")
		}
	})

	stop := s.stopChan
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		task.run(ctx, stop)
	}()
	return nil
}

// Stop signals the task and waits for it to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
}

// Tick announces every prayer whose minute is now's minute, or lies between
// the previous tick and now when a poll was late. Yesterday's set is scanned
// too, since a late Isha can fall after midnight. It returns how many
// notifications went out.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) (int, error) {
	current := now.Truncate(time.Minute)

	s.mu.Lock()
	last := s.lastTick
	s.lastTick = current
	s.mu.Unlock()

	today, err := s.source.Day(ctx, now)
	if err != nil {
		return 0, err
	}
	days := []timetable.Day{today}
	if yesterday, err := s.source.Day(ctx, now.AddDate(0, 0, -1)); err != nil {
		log.Debug().Err(err).Msg("previous day unavailable, skipping its late entries")
	} else {
		days = append([]timetable.Day{yesterday}, days...)
	}

	sent := 0
	var errs []error
	for _, day := range days {
		for _, e := range day.Times.Entries() {
			if !due(e, current, last) {
				continue
			}
			ok, err := s.dispatcher.Dispatch(ctx, notify.Notification{
				Date:   day.Date,
				Prayer: e.Name,
				Time:   e.Time.Format(prayer.TimeFormat),
				City:   day.City,
				At:     e.Time,
			})
			if err != nil {
				errs = append(errs, err)
			}
			if ok {
				sent++
			}
		}
	}
	return sent, errors.Join(errs...)
}

func due(e prayer.Entry, current, last time.Time) bool {
	at := e.Time.Truncate(time.Minute)
	if at.Equal(current) {
		return true
	}
	return !last.IsZero() && at.After(last) && at.Before(current)
}
