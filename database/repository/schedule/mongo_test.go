package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Gidy30B/project02-sub000/models"

	"go.mongodb.org/mongo-driver/bson"
)

func sampleSchedule() *models.Schedule {
	appt := "appt-1"
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	return &models.Schedule{
		ID:             "sched-1",
		ProfessionalID: "pro-1",
		Recurrence:     models.RecurrenceWeekly,
		Version:        3,
		CreatedAt:      now,
		UpdatedAt:      now,
		Availability: map[string][]models.Slot{
			"2030-01-14": {
				{ID: "b", Date: "2030-01-14", StartTime: "09:00", EndTime: "09:30", Start: 540, End: 570},
			},
			"2030-01-07": {
				{ID: "a", Date: "2030-01-07", StartTime: "09:00", EndTime: "09:30", Start: 540, End: 570, IsBooked: true, AppointmentID: &appt},
			},
		},
	}
}

func TestToDocument_DaysSortedByDate(t *testing.T) {
	doc := toDocument(sampleSchedule())
	if len(doc.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(doc.Days))
	}
	if doc.Days[0].Date != "2030-01-07" || doc.Days[1].Date != "2030-01-14" {
		t.Errorf("days not sorted: %s, %s", doc.Days[0].Date, doc.Days[1].Date)
	}
	if doc.Version != 3 || doc.ProfessionalID != "pro-1" {
		t.Errorf("unexpected header fields: %+v", doc)
	}
}

func TestDocument_BSONRoundTrip(t *testing.T) {
	in := sampleSchedule()
	raw, err := bson.Marshal(toDocument(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc scheduleDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out := fromDocument(doc)

	if out.ID != in.ID || out.Recurrence != in.Recurrence || out.Version != in.Version {
		t.Errorf("header mismatch: %+v", out)
	}
	if !out.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("createdAt mismatch: %s vs %s", out.CreatedAt, in.CreatedAt)
	}
	booked := out.Availability["2030-01-07"]
	if len(booked) != 1 || !booked[0].IsBooked || booked[0].AppointmentID == nil || *booked[0].AppointmentID != "appt-1" {
		t.Errorf("booked slot lost in round trip: %+v", booked)
	}
	free := out.Availability["2030-01-14"]
	if len(free) != 1 || free[0].IsBooked || free[0].AppointmentID != nil {
		t.Errorf("free slot changed in round trip: %+v", free)
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("expected nil for nil")
	}

	err := classify(fmt.Errorf("find: %w", context.DeadlineExceeded))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected deadline to classify as unavailable, got %v", err)
	}

	plain := errors.New("bad filter")
	if got := classify(plain); got != plain || errors.Is(got, ErrUnavailable) {
		t.Errorf("expected non-transient error unchanged, got %v", got)
	}
}
