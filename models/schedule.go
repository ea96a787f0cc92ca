package models

import "time"

// Recurrence is the rule used to replicate submitted shifts across dates.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Break is a pause inside a shift; both ends are "HH:mm".
type Break struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// Shift is a professional's declared working window for one day.
type Shift struct {
	Name                        string  `json:"name" bson:"name"`
	StartTime                   string  `json:"startTime" bson:"startTime"`
	EndTime                     string  `json:"endTime" bson:"endTime"`
	ConsultationDurationMinutes int     `json:"consultationDurationMinutes" bson:"consultationDurationMinutes"`
	Breaks                      []Break `json:"breaks,omitempty" bson:"breaks,omitempty"`
}

// Schedule is the complete availability of one professional, keyed by date.
type Schedule struct {
	ID             string            `json:"id"`
	ProfessionalID string            `json:"professionalId"`
	Recurrence     Recurrence        `json:"recurrence"`
	Availability   map[string][]Slot `json:"availability"`
	Version        int               `json:"version"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// Clone returns a deep copy so callers can mutate without aliasing stored state.
func (s *Schedule) Clone() *Schedule {
	if s == nil {
		return nil
	}
	out := *s
	out.Availability = make(map[string][]Slot, len(s.Availability))
	for date, slots := range s.Availability {
		copied := make([]Slot, len(slots))
		for i, sl := range slots {
			if sl.AppointmentID != nil {
				id := *sl.AppointmentID
				sl.AppointmentID = &id
			}
			copied[i] = sl
		}
		out.Availability[date] = copied
	}
	return &out
}

// CreateScheduleRequest is the body of POST /schedule.
type CreateScheduleRequest struct {
	ProfessionalID string             `json:"professionalId" binding:"required"`
	Availability   map[string][]Shift `json:"availability" binding:"required"`
	Recurrence     Recurrence         `json:"recurrence"`
}

// ScheduleUpdates holds the optional fields of a partial update.
type ScheduleUpdates struct {
	ProfessionalID *string            `json:"professionalId,omitempty"`
	Recurrence     *Recurrence        `json:"recurrence,omitempty"`
	Availability   map[string][]Shift `json:"availability,omitempty"`
}

// UpdateScheduleRequest is the body of PUT /schedule.
type UpdateScheduleRequest struct {
	ScheduleID string          `json:"scheduleId" binding:"required"`
	Updates    ScheduleUpdates `json:"updates"`
}
