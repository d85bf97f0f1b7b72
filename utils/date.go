package utils

import "time"

// DateLayout is the calendar date format the clinic API filters by.
const DateLayout = "2006-01-02"

func FromUTCToTimezone(utcTime time.Time, timezone string) time.Time {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return utcTime
	}
	return utcTime.In(loc)
}

func DateIn(t time.Time, timezone string) string {
	return FromUTCToTimezone(t.UTC(), timezone).Format(DateLayout)
}

// IsDate reports whether s is a YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
