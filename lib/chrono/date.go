package chrono

import "time"

// EncodeDate packs a calendar date into the integer form the monitor
// endpoint expects, e.g. May 21st 2025 -> 20250521. The local calendar
// fields of t are used as-is, no timezone conversion happens here.
func EncodeDate(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// ApplyOffset shifts a date by a number of days (negative values go
// backwards), rolling over months and years.
func ApplyOffset(base time.Time, offsetDays int) time.Time {
	return base.AddDate(0, 0, offsetDays)
}
