package model

// Prayer is one row of the athan page.
type Prayer struct {
	Name   string // "FAJR", "DHUHR", ...
	Time   string // "05:12", 12-hour clock
	Period string // "AM" or "PM"
	Time24 string // "17:12"
	Next   bool   // upcoming prayer of the day
}

type AthanPageData struct {
	City     string
	Date     string // "AUGUST 5, 2025"
	Timezone string
	Method   string
	Madhab   string
	Prayers  []Prayer
	Error    string
}

// PrayerDay is one persisted row of the daily prayer_times table.
type PrayerDay struct {
	Date      string  `db:"date"      json:"date"`
	Fajr      string  `db:"fajr"      json:"fajr"`
	Sunrise   string  `db:"sunrise"   json:"sunrise"`
	Dhuhr     string  `db:"dhuhr"     json:"dhuhr"`
	Asr       string  `db:"asr"       json:"asr"`
	Maghrib   string  `db:"maghrib"   json:"maghrib"`
	Isha      string  `db:"isha"      json:"isha"`
	Method    string  `db:"method"    json:"method"`
	Madhab    string  `db:"madhab"    json:"madhab"`
	Latitude  float64 `db:"latitude"  json:"latitude"`
	Longitude float64 `db:"longitude" json:"longitude"`
	Timezone  string  `db:"timezone"  json:"timezone"`
	UpdatedAt string  `db:"updated_at" json:"updated_at"`
}
