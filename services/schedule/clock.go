package schedule

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for availability keys.
const DateLayout = "2006-01-02"

// ParseClock converts "HH:mm" into minutes since midnight (0..1439).
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, newError(ErrInvalidTimeFormat, "%q: expected HH:mm", s)
	}
	h, okH := twoDigits(s[0:2])
	m, okM := twoDigits(s[3:5])
	if !okH || !okM {
		return 0, newError(ErrInvalidTimeFormat, "%q: expected digits", s)
	}
	if h > 23 || m > 59 {
		return 0, newError(ErrInvalidTimeFormat, "%q: out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:mm".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func twoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// ParseDate parses a "YYYY-MM-DD" key into a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, newError(ErrInvalidDateFormat, "%q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders the calendar date of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// SlotStart returns the absolute instant a slot begins in loc.
func SlotStart(date string, startMinutes int, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, startMinutes/60, startMinutes%60, 0, 0, loc), nil
}
