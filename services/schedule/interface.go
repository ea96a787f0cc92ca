package schedule

import (
	"context"
	"time"

	"github.com/Gidy30B/project02-sub000/database/locks"
	scheduleRepo "github.com/Gidy30B/project02-sub000/database/repository/schedule"
	"github.com/Gidy30B/project02-sub000/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScheduleService is the request/response surface of the scheduling core.
type ScheduleService interface {
	// SubmitAvailability creates the professional's schedule or merges into it.
	SubmitAvailability(ctx context.Context, req models.CreateScheduleRequest) (*models.Schedule, error)
	// UpdateSchedule applies a partial update with the same merge policy.
	UpdateSchedule(ctx context.Context, req models.UpdateScheduleRequest) (*models.Schedule, error)
	GetSchedule(ctx context.Context, scheduleID string) (*models.Schedule, error)
	GetSlotsForDate(ctx context.Context, professionalID, date string) ([]models.Slot, error)
	BookSlot(ctx context.Context, slotID, appointmentID string) (*models.Slot, error)
	UnbookSlot(ctx context.Context, slotID string) (*models.Slot, error)
}

// DefaultScheduleService wires the pure scheduling functions to storage and locking.
type DefaultScheduleService struct {
	Repo   scheduleRepo.ScheduleRepository
	Locks  locks.Locker
	Logger *zap.Logger

	HorizonDays     int            // recurrence horizon; DefaultHorizonDays when zero
	Location        *time.Location // wall-clock zone for "is this slot in the past"
	MaxSaveAttempts int            // reload-and-merge rounds on version conflicts

	Now   func() time.Time
	NewID func() string
}

var _ ScheduleService = (*DefaultScheduleService)(nil)

func (s *DefaultScheduleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultScheduleService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *DefaultScheduleService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultScheduleService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

func (s *DefaultScheduleService) maxSaveAttempts() int {
	if s.MaxSaveAttempts > 0 {
		return s.MaxSaveAttempts
	}
	return 3
}
