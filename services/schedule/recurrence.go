package schedule

import (
	"strings"
	"time"

	"github.com/Gidy30B/project02-sub000/models"
)

// DefaultHorizonDays bounds recurrence expansion when none is configured.
const DefaultHorizonDays = 365

// ParseRecurrence normalizes a rule; an empty rule means none.
func ParseRecurrence(raw models.Recurrence) (models.Recurrence, error) {
	switch r := models.Recurrence(strings.ToLower(strings.TrimSpace(string(raw)))); r {
	case "", models.RecurrenceNone:
		return models.RecurrenceNone, nil
	case models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly:
		return r, nil
	default:
		return "", newError(ErrInvalidRecurrence, "recurrence %q must be one of none, daily, weekly, monthly", raw)
	}
}

// ExpandDates lists the dates a shift anchored at start applies to, start
// included, up to and including start+horizonDays.
//
// Monthly steps are taken from the anchor, not from the previous result, and
// clamp to the last day of short months: Jan 31 yields Feb 29 (or 28), Mar 31,
// Apr 30 and so on.
func ExpandDates(start time.Time, rule models.Recurrence, horizonDays int) ([]time.Time, error) {
	rule, err := ParseRecurrence(rule)
	if err != nil {
		return nil, err
	}
	anchor := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	if rule == models.RecurrenceNone {
		return []time.Time{anchor}, nil
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	limit := anchor.AddDate(0, 0, horizonDays)

	var dates []time.Time
	for k := 0; ; k++ {
		var next time.Time
		switch rule {
		case models.RecurrenceDaily:
			next = anchor.AddDate(0, 0, k)
		case models.RecurrenceWeekly:
			next = anchor.AddDate(0, 0, 7*k)
		case models.RecurrenceMonthly:
			next = addMonthsClamped(anchor, k)
		}
		if next.After(limit) {
			break
		}
		dates = append(dates, next)
	}
	return dates, nil
}

func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
