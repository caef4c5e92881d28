package availability

import (
	"strings"
	"time"
)

// HorizonDays bounds how far ahead availability is offered.
const HorizonDays = 14

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ResolveWindow normalizes a caller-supplied date expression into a concrete
// calendar window. Accepted forms: "today", "tomorrow", a weekday name
// (resolved to its nearest strictly-future occurrence), or YYYY-MM-DD.
// Anything else, and dates outside the booking horizon, resolve to the whole
// horizon starting now.
func ResolveWindow(expr string, now time.Time) (time.Time, time.Time) {
	horizonEnd := now.AddDate(0, 0, HorizonDays)

	switch day, ok := resolveDay(expr, now); {
	case !ok:
		return now, horizonEnd
	case day.Before(startOfDay(now)) || day.After(horizonEnd):
		return now, horizonEnd
	case day.Equal(startOfDay(now)):
		// Today: only what is still ahead of us.
		return now, day.AddDate(0, 0, 1)
	default:
		return day, day.AddDate(0, 0, 1)
	}
}

func resolveDay(expr string, now time.Time) (time.Time, bool) {
	s := strings.ToLower(strings.TrimSpace(expr))

	switch s {
	case "today":
		return startOfDay(now), true
	case "tomorrow":
		return startOfDay(now).AddDate(0, 0, 1), true
	}

	if wd, ok := weekdays[s]; ok {
		days := int(wd-now.Weekday()+7) % 7
		if days == 0 {
			days = 7
		}
		return startOfDay(now).AddDate(0, 0, days), true
	}

	if d, err := time.ParseInLocation("2006-01-02", s, now.Location()); err == nil {
		return d, true
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
