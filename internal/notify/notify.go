// Package notify delivers prayer-time alerts and makes sure each prayer is
// announced at most once per day.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Notification announces that a prayer time has arrived.
type Notification struct {
	Date   string    `json:"date"`
	Prayer string    `json:"prayer"`
	Time   string    `json:"time"`
	City   string    `json:"city,omitempty"`
	At     time.Time `json:"at"`
}

func (n Notification) Title() string {
	return fmt.Sprintf("%s (%s)", n.Prayer, n.Time)
}

func (n Notification) Message() string {
	if n.City == "" {
		return fmt.Sprintf("It is time for %s.", n.Prayer)
	}
	return fmt.Sprintf("It is time for %s in %s.", n.Prayer, n.City)
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification) error

func (f NotifierFunc) Notify(ctx context.Context, n Notification) error { return f(ctx, n) }

// Dispatcher fans a notification out to every notifier, once per
// (date, prayer). Safe for concurrent use.
type Dispatcher struct {
	notifiers []Notifier

	mu    sync.Mutex
	fired map[string]string // key -> date
}

func NewDispatcher(notifiers ...Notifier) *Dispatcher {
	return &Dispatcher{notifiers: notifiers, fired: make(map[string]string)}
}

// Dispatch reports whether the notification was sent. A duplicate returns
// false with no error. When every notifier fails the prayer is left unmarked
// so a later poll can retry.
func (d *Dispatcher) Dispatch(ctx context.Context, n Notification) (bool, error) {
	key := n.Date + "/" + n.Prayer

	d.mu.Lock()
	if _, ok := d.fired[key]; ok {
		d.mu.Unlock()
		return false, nil
	}
	d.prune(n.Date)
	d.fired[key] = n.Date
	d.mu.Unlock()

	var errs []error
	for _, notifier := range d.notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			log.Error().Err(err).Str("prayer", n.Prayer).Str("date", n.Date).Msg("notification failed")
			errs = append(errs, err)
		}
	}
	if len(d.notifiers) > 0 && len(errs) == len(d.notifiers) {
		d.mu.Lock()
		delete(d.fired, key)
		d.mu.Unlock()
		return false, errors.Join(errs...)
	}

	log.Info().Str("prayer", n.Prayer).Str("time", n.Time).Str("date", n.Date).Msg("prayer notification sent")
	return true, errors.Join(errs...)
}

// prune forgets keys older than the day before date. The previous day stays
// because its Isha can fall after midnight.
func (d *Dispatcher) prune(date string) {
	cutoff := date
	if day, err := time.Parse(time.DateOnly, date); err == nil {
		cutoff = day.AddDate(0, 0, -1).Format(time.DateOnly)
	}
	for k, fired := range d.fired {
		if fired < cutoff {
			delete(d.fired, k)
		}
	}
}
