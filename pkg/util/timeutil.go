package util

import "time"

// Civil layouts echoed back in chart and horoscope payloads.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// CivilDate formats t as a date in its own location.
func CivilDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CivilClock formats t as a wall clock time in its own location.
func CivilClock(t time.Time) string {
	return t.Format(ClockLayout)
}
