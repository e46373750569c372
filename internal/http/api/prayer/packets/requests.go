package packets

// REQUESTS FOR /api/prayer-times and /api/admin/settings

type PrayerTimesQuery struct {
	Date string `form:"date"` // YYYY-MM-DD, defaults to today
}

// UpdateSettingsRequest changes the active location or config. Omitted
// fields keep their current value.
type UpdateSettingsRequest struct {
	City      *string  `json:"city"`
	Latitude  *float64 `json:"latitude"  binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Method    *string  `json:"method"`
	Madhab    *string  `json:"madhab"`
}
