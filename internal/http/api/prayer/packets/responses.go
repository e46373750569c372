package packets

// RESPONSES FOR /api/prayer-times/*

type Timing struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

type PrayerTimesResponse struct {
	Date      string   `json:"date"`
	City      string   `json:"city,omitempty"`
	Timezone  string   `json:"timezone"`
	Method    string   `json:"method"`
	Madhab    string   `json:"madhab"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Timings   []Timing `json:"timings"`
}

type NextPrayerResponse struct {
	Date    string `json:"date"`
	Name    string `json:"name,omitempty"`
	Time    string `json:"time,omitempty"`
	Minutes int    `json:"minutes_until"`
	Done    bool   `json:"done"` // every prayer of the day has passed
}

type SettingsResponse struct {
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Method    string  `json:"method"`
	Madhab    string  `json:"madhab"`
}
