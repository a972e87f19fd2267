package domain

// Grid and same-day rules of the availability engine
const (
	GridStepMinutes      = 15 // step between candidate start times
	SameDayBufferMinutes = 10 // minimum notice for bookings made for today
)

// Default values applied when tenant data is missing or malformed
const (
	DefaultOpenTime               = "10:00"
	DefaultCloseTime              = "19:00"
	DefaultServiceDurationMinutes = 60
	DefaultMaxConcurrentBookings  = 3
	DefaultTimezone               = "Asia/Tokyo"
)

// Business validation constants
const (
	MinConcurrentBookings = 1
	DefaultCalendarDays   = 14
	MaxCalendarDays       = 31
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
