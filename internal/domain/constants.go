package domain

// Default policy values
const (
	DefaultWasherMinutes     = 60
	DefaultDryerMinutes      = 120
	DefaultFixedMinutes      = 90
	DefaultBlackoutStartHour = 0
	DefaultBlackoutEndHour   = 6
	DefaultHorizonDays       = 7
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
