package schedule

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/Gidy30B/project02-sub000/models"
)

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func morningShift() models.Shift {
	return models.Shift{Name: "morning", StartTime: "09:00", EndTime: "11:00", ConsultationDurationMinutes: 30}
}

func TestBuildAvailability_SingleDate(t *testing.T) {
	days, err := BuildAvailability(BuildRequest{
		Availability: map[string][]models.Shift{"2030-01-07": {morningShift()}},
	}, seqIDs("s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slots := days["2030-01-07"]
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s.IsBooked || s.AppointmentID != nil {
			t.Errorf("new slot %s should be free", s.ID)
		}
		if s.Date != "2030-01-07" || s.ShiftName != "morning" {
			t.Errorf("unexpected slot metadata: %+v", s)
		}
	}
	if slots[0].StartTime != "09:00" || slots[3].EndTime != "11:00" {
		t.Errorf("unexpected bounds %s..%s", slots[0].StartTime, slots[3].EndTime)
	}
}

func TestBuildAvailability_RecurrenceReplicates(t *testing.T) {
	days, err := BuildAvailability(BuildRequest{
		Availability: map[string][]models.Shift{"2030-01-07": {morningShift()}},
		Recurrence:   models.RecurrenceWeekly,
		HorizonDays:  28,
	}, seqIDs("s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, d := range []string{"2030-01-07", "2030-01-14", "2030-01-21", "2030-01-28", "2030-02-04"} {
		if len(days[d]) != 4 {
			t.Errorf("expected 4 slots on %s, got %d", d, len(days[d]))
		}
	}
	if len(days) != 5 {
		t.Errorf("expected 5 dates, got %d", len(days))
	}

	seen := make(map[string]bool)
	for _, slots := range days {
		for _, s := range slots {
			if seen[s.ID] {
				t.Fatalf("duplicate slot ID %s", s.ID)
			}
			seen[s.ID] = true
		}
	}
}

func TestBuildAvailability_TwoShiftsSameDay(t *testing.T) {
	afternoon := models.Shift{Name: "afternoon", StartTime: "14:00", EndTime: "15:00", ConsultationDurationMinutes: 30}
	days, err := BuildAvailability(BuildRequest{
		Availability: map[string][]models.Shift{"2030-01-07": {afternoon, morningShift()}},
	}, seqIDs("s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slots := days["2030-01-07"]
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Start < slots[i-1].Start {
			t.Fatalf("slots not ordered by start: %s after %s", slots[i].StartTime, slots[i-1].StartTime)
		}
	}
}

func TestBuildAvailability_OverlappingShiftsRejected(t *testing.T) {
	late := models.Shift{Name: "late", StartTime: "10:30", EndTime: "12:00", ConsultationDurationMinutes: 30}
	_, err := BuildAvailability(BuildRequest{
		Availability: map[string][]models.Shift{"2030-01-07": {morningShift(), late}},
	}, seqIDs("s"))
	if !errors.Is(err, ErrOverlappingShifts) {
		t.Errorf("expected OVERLAPPING_SHIFTS, got %v", err)
	}
}

func TestBuildAvailability_OneInvalidShiftRejectsBatch(t *testing.T) {
	bad := models.Shift{Name: "bad", StartTime: "15:00", EndTime: "14:00", ConsultationDurationMinutes: 30}
	days, err := BuildAvailability(BuildRequest{
		Availability: map[string][]models.Shift{
			"2030-01-07": {morningShift()},
			"2030-01-08": {bad},
		},
	}, seqIDs("s"))
	if !errors.Is(err, ErrInvalidShift) {
		t.Fatalf("expected INVALID_SHIFT, got %v", err)
	}
	if days != nil {
		t.Errorf("expected no partial result, got %d dates", len(days))
	}
}

func TestBuildAvailability_BadDateKey(t *testing.T) {
	_, err := BuildAvailability(BuildRequest{
		Availability: map[string][]models.Shift{"07/01/2030": {morningShift()}},
	}, seqIDs("s"))
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("expected INVALID_DATE_FORMAT, got %v", err)
	}
}

func TestMergeDay_PreservesBookedSlots(t *testing.T) {
	appt := "appt-1"
	existing := []models.Slot{
		{ID: "old-1", Date: "2030-01-07", StartTime: "09:00", EndTime: "09:30", Start: 540, End: 570, IsBooked: true, AppointmentID: &appt},
		{ID: "old-2", Date: "2030-01-07", StartTime: "09:30", EndTime: "10:00", Start: 570, End: 600},
	}
	fresh := []models.Slot{
		{ID: "new-1", Date: "2030-01-07", StartTime: "09:00", EndTime: "09:20", Start: 540, End: 560},
		{ID: "new-2", Date: "2030-01-07", StartTime: "09:20", EndTime: "09:40", Start: 560, End: 580},
		{ID: "new-3", Date: "2030-01-07", StartTime: "09:40", EndTime: "10:00", Start: 580, End: 600},
	}

	merged := MergeDay(existing, fresh)
	if len(merged) != 2 {
		t.Fatalf("expected 2 slots, got %d: %+v", len(merged), merged)
	}
	if merged[0].ID != "old-1" || !merged[0].IsBooked || *merged[0].AppointmentID != "appt-1" {
		t.Errorf("booked slot not preserved: %+v", merged[0])
	}
	if merged[1].ID != "new-3" {
		t.Errorf("expected new-3 to survive, got %s", merged[1].ID)
	}
}

func TestMergeAvailability_LeavesOtherDatesAlone(t *testing.T) {
	current := map[string][]models.Slot{
		"2030-01-06": {{ID: "keep", Date: "2030-01-06", StartTime: "09:00", EndTime: "09:30", Start: 540, End: 570}},
		"2030-01-07": {{ID: "replace", Date: "2030-01-07", StartTime: "09:00", EndTime: "09:30", Start: 540, End: 570}},
	}
	fresh := map[string][]models.Slot{
		"2030-01-07": {{ID: "fresh", Date: "2030-01-07", StartTime: "10:00", EndTime: "10:30", Start: 600, End: 630}},
	}
	merged := MergeAvailability(current, fresh)
	if merged["2030-01-06"][0].ID != "keep" {
		t.Errorf("untouched date changed: %+v", merged["2030-01-06"])
	}
	if len(merged["2030-01-07"]) != 1 || merged["2030-01-07"][0].ID != "fresh" {
		t.Errorf("expected unbooked slots replaced, got %+v", merged["2030-01-07"])
	}
}

func TestBuildAvailability_HugeDurationIsEmptyDay(t *testing.T) {
	shift := morningShift()
	shift.ConsultationDurationMinutes = math.MaxInt
	days, err := BuildAvailability(BuildRequest{
		Availability: map[string][]models.Shift{"2030-01-07": {shift}},
	}, seqIDs("s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days["2030-01-07"]) != 0 {
		t.Errorf("expected no slots, got %d", len(days["2030-01-07"]))
	}
}
