package models

// AppointmentEvent is the payload of an appointment lifecycle task.
type AppointmentEvent struct {
	SlotID        string `json:"slotId"`
	AppointmentID string `json:"appointmentId,omitempty"`
}
