package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout            = "2006-01-02"
	DisplayDateLayout     = "Jan 2, 2006"
	DisplayTimeLayout     = "3:04 PM"
	DisplayDateTimeLayout = "Jan 2, 2006 3:04 PM"
)

var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3:04 pm"}

// LoadLocation falls back to UTC for an empty name.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

// CombineDateAndTime reads date (YYYY-MM-DD) and a wall clock ("HH:mm" or
// "h:mm AM") as a local time in loc.
func CombineDateAndTime(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}

	clock = strings.TrimSpace(clock)
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, clock)
		if err != nil {
			continue
		}
		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q", clock)
}

// StartOfDay returns midnight of date in loc.
func StartOfDay(date string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	return day, nil
}

func FormatDisplayDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DisplayDateLayout)
}

func FormatDisplayTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DisplayTimeLayout)
}

func FormatDisplayDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DisplayDateTimeLayout)
}
