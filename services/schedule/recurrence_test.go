package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/Gidy30B/project02-sub000/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func TestExpandDates_None(t *testing.T) {
	dates, err := ExpandDates(mustDate(t, "2024-03-10"), models.RecurrenceNone, 365)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 1 || FormatDate(dates[0]) != "2024-03-10" {
		t.Errorf("expected only 2024-03-10, got %v", dates)
	}
}

func TestExpandDates_Daily(t *testing.T) {
	dates, err := ExpandDates(mustDate(t, "2024-01-01"), models.RecurrenceDaily, 365)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 366 {
		t.Fatalf("expected 366 dates, got %d", len(dates))
	}
	if last := FormatDate(dates[len(dates)-1]); last != "2024-12-31" {
		t.Errorf("expected last date 2024-12-31, got %s", last)
	}
}

func TestExpandDates_Weekly(t *testing.T) {
	dates, err := ExpandDates(mustDate(t, "2024-01-01"), models.RecurrenceWeekly, 365)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 53 {
		t.Fatalf("expected 53 dates, got %d", len(dates))
	}
	for i, d := range dates {
		if d.Weekday() != time.Monday {
			t.Fatalf("date %d (%s) is not a Monday", i, FormatDate(d))
		}
	}
	if last := FormatDate(dates[52]); last != "2024-12-30" {
		t.Errorf("expected last date 2024-12-30, got %s", last)
	}
}

func TestExpandDates_MonthlyClampsToMonthEnd(t *testing.T) {
	dates, err := ExpandDates(mustDate(t, "2024-01-31"), models.RecurrenceMonthly, 365)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 12 {
		t.Fatalf("expected 12 dates, got %d", len(dates))
	}
	want := []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"}
	for i, w := range want {
		if got := FormatDate(dates[i]); got != w {
			t.Errorf("date %d: expected %s, got %s", i, w, got)
		}
	}
}

func TestExpandDates_HorizonDefaultsWhenZero(t *testing.T) {
	dates, err := ExpandDates(mustDate(t, "2023-01-01"), models.RecurrenceDaily, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != DefaultHorizonDays+1 {
		t.Errorf("expected %d dates, got %d", DefaultHorizonDays+1, len(dates))
	}
}

func TestParseRecurrence(t *testing.T) {
	got, err := ParseRecurrence(" Weekly ")
	if err != nil || got != models.RecurrenceWeekly {
		t.Errorf("expected weekly, got %q (%v)", got, err)
	}
	got, err = ParseRecurrence("")
	if err != nil || got != models.RecurrenceNone {
		t.Errorf("expected none for empty rule, got %q (%v)", got, err)
	}
	if _, err := ParseRecurrence("fortnightly"); !errors.Is(err, ErrInvalidRecurrence) {
		t.Errorf("expected INVALID_RECURRENCE, got %v", err)
	}
}
