package scheduleRepo

import (
	"context"
	"errors"

	"github.com/Gidy30B/project02-sub000/models"
)

var (
	// ErrNotFound is returned when no schedule or slot matches.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned by Save when the stored version moved on.
	ErrVersionConflict = errors.New("schedule version conflict")
	// ErrDuplicateProfessional is returned when a professional would own two schedules.
	ErrDuplicateProfessional = errors.New("professional already has a schedule")
	// ErrSlotBooked is returned by MarkSlotBooked when the slot is no longer free.
	ErrSlotBooked = errors.New("slot already booked")
	// ErrSlotFree is returned by MarkSlotFree when the slot is not booked.
	ErrSlotFree = errors.New("slot not booked")
	// ErrUnavailable wraps timeouts and connection failures; callers may retry.
	ErrUnavailable = errors.New("schedule store unavailable")
)

// SlotLocation pins a slot to its owning schedule and date.
type SlotLocation struct {
	ScheduleID     string
	ProfessionalID string
	Slot           models.Slot
}

// ScheduleRepository persists one Schedule per professional.
type ScheduleRepository interface {
	Create(ctx context.Context, s *models.Schedule) error
	GetByID(ctx context.Context, scheduleID string) (*models.Schedule, error)
	GetByProfessionalID(ctx context.Context, professionalID string) (*models.Schedule, error)
	// Save replaces the schedule if its stored version still equals s.Version,
	// then bumps s.Version.
	Save(ctx context.Context, s *models.Schedule) error
	FindSlot(ctx context.Context, slotID string) (*SlotLocation, error)
	GetSlotsForDate(ctx context.Context, professionalID, date string) ([]models.Slot, error)
	// MarkSlotBooked flips a free slot to booked in one conditional write.
	MarkSlotBooked(ctx context.Context, slotID, appointmentID string) (*models.Slot, error)
	// MarkSlotFree flips a booked slot back to free in one conditional write.
	MarkSlotFree(ctx context.Context, slotID string) (*models.Slot, error)
}
