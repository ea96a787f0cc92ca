package models

// Slot is a single bookable unit derived from a shift on one calendar date.
type Slot struct {
	ID            string  `bson:"id" json:"id"`
	Date          string  `bson:"date" json:"date"`                               // e.g., "2025-02-25"
	StartTime     string  `bson:"startTime" json:"startTime"`                     // "HH:mm"
	EndTime       string  `bson:"endTime" json:"endTime"`                         // "HH:mm"
	Start         int     `bson:"start" json:"start"`                             // minutes from midnight (e.g., 540 for 9:00 AM)
	End           int     `bson:"end" json:"end"`                                 // minutes from midnight
	ShiftName     string  `bson:"shiftName,omitempty" json:"shiftName,omitempty"` // originating shift label
	IsBooked      bool    `bson:"isBooked" json:"isBooked"`
	AppointmentID *string `bson:"appointmentId" json:"appointmentId"` // non-nil iff IsBooked
}

// SlotsResponse is the payload returned for a professional's day.
type SlotsResponse struct {
	Slots []Slot `json:"slots"`
}

// BookSlotRequest is the body of a booking call.
type BookSlotRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
}
