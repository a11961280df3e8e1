package sheet

import (
	"strconv"
	"time"
)

// serialEpoch is the Google Sheets date-serial epoch (the Lotus 1-2-3 convention).
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ToSerial converts a wall-clock time to the sheet's date-serial number:
// whole days since the epoch plus the fractional day from seconds and microseconds.
func ToSerial(t time.Time) float64 {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	d := wall.Sub(serialEpoch)

	days := d / (24 * time.Hour)
	rem := d - days*24*time.Hour
	secs := rem / time.Second
	micros := (rem - secs*time.Second) / time.Microsecond

	return float64(days) + float64(secs)/86400 + float64(micros)/86_400_000_000
}

// FromSerial converts a date-serial number back to a local wall-clock time.
func FromSerial(serial float64) time.Time {
	wall := serialEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
	return time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), time.Local)
}

// Date string layouts the store has been observed to hold.
const (
	layoutDateTime = "1/2/2006 15:04:05"
	layoutDate     = "1/2/2006"
)

// ParseCell interprets a start-date cell, which may be a numeric serial
// (float64 from the API, or a string holding one) or one of two date-string
// layouts. Unparseable values fall back to time.Now(); the resulting
// near-zero duration is a long-standing quirk of the deployment and is
// preserved deliberately.
func ParseCell(v any) time.Time {
	switch val := v.(type) {
	case float64:
		return FromSerial(val)
	case string:
		if serial, err := strconv.ParseFloat(val, 64); err == nil {
			return FromSerial(serial)
		}
		if t, err := time.ParseInLocation(layoutDateTime, val, time.Local); err == nil {
			return t
		}
		if t, err := time.ParseInLocation(layoutDate, val, time.Local); err == nil {
			return t
		}
	}
	return time.Now()
}
