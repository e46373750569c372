package prayer

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	Fajr    = "Fajr"
	Sunrise = "Sunrise"
	Dhuhr   = "Dhuhr"
	Asr     = "Asr"
	Maghrib = "Maghrib"
	Isha    = "Isha"
)

// Names is the canonical display order.
var Names = []string{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// TimeFormat is the zero-padded 24-hour layout used for every prayer time.
const TimeFormat = "15:04"

type Entry struct {
	Name string
	Time time.Time
}

// TimeSet is the six prayer times of one day in canonical order.
type TimeSet struct {
	entries [6]Entry
}

func newTimeSet(fajr, sunrise, dhuhr, asr, maghrib, isha time.Time) TimeSet {
	return TimeSet{entries: [6]Entry{
		{Fajr, fajr},
		{Sunrise, sunrise},
		{Dhuhr, dhuhr},
		{Asr, asr},
		{Maghrib, maghrib},
		{Isha, isha},
	}}
}

// Entries returns a copy of the entries in canonical order.
func (s TimeSet) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries[:])
	return out
}

// Get returns the instant for a prayer name.
func (s TimeSet) Get(name string) (time.Time, bool) {
	for _, e := range s.entries {
		if e.Name == name {
			return e.Time, true
		}
	}
	return time.Time{}, false
}

// FormattedEntry is a prayer name with its HH:MM local time.
type FormattedEntry struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

// Format renders every entry as HH:MM in canonical order.
func (s TimeSet) Format() []FormattedEntry {
	out := make([]FormattedEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = FormattedEntry{Name: e.Name, Time: e.Time.Format(TimeFormat)}
	}
	return out
}

// Map is Format keyed by prayer name, for callers that don't care about order.
func (s TimeSet) Map() map[string]string {
	out := make(map[string]string, len(s.entries))
	for _, e := range s.entries {
		out[e.Name] = e.Time.Format(TimeFormat)
	}
	return out
}

type jsonEntry struct {
	Name string    `json:"name"`
	Time time.Time `json:"time"`
}

// MarshalJSON encodes the full instants so a decoded set formats identically.
func (s TimeSet) MarshalJSON() ([]byte, error) {
	out := make([]jsonEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = jsonEntry{Name: e.Name, Time: e.Time}
	}
	return json.Marshal(out)
}

func (s *TimeSet) UnmarshalJSON(data []byte) error {
	var in []jsonEntry
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if len(in) != len(Names) {
		return fmt.Errorf("prayer time set: want %d entries, got %d", len(Names), len(in))
	}
	for i, e := range in {
		if e.Name != Names[i] {
			return fmt.Errorf("prayer time set: entry %d is %q, want %q", i, e.Name, Names[i])
		}
		s.entries[i] = Entry{Name: e.Name, Time: e.Time}
	}
	return nil
}
