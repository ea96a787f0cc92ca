package schedule

import (
	"context"
	"errors"
	"strings"

	"github.com/Gidy30B/project02-sub000/database/locks"
	scheduleRepo "github.com/Gidy30B/project02-sub000/database/repository/schedule"
	"github.com/Gidy30B/project02-sub000/models"

	"go.uber.org/zap"
)

// BookSlot moves a slot from Free to Booked. The store write is conditional on
// the slot still being free, so of two concurrent calls exactly one succeeds.
func (s *DefaultScheduleService) BookSlot(ctx context.Context, slotID, appointmentID string) (*models.Slot, error) {
	if strings.TrimSpace(appointmentID) == "" {
		return nil, newError(ErrInvalidRequest, "appointmentId is required")
	}
	loc, release, err := s.lockSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	defer release()

	if loc.Slot.IsBooked {
		return nil, newError(ErrSlotAlreadyBooked, "slot %s is already booked", slotID)
	}
	startsAt, err := SlotStart(loc.Slot.Date, slotInterval(loc.Slot).Start, s.location())
	if err != nil {
		return nil, err
	}
	if startsAt.Before(s.now()) {
		return nil, newError(ErrSlotInPast, "slot %s started at %s", slotID, startsAt.Format("2006-01-02 15:04 MST"))
	}

	slot, err := s.Repo.MarkSlotBooked(ctx, slotID, appointmentID)
	switch {
	case errors.Is(err, scheduleRepo.ErrSlotBooked):
		return nil, newError(ErrSlotAlreadyBooked, "slot %s is already booked", slotID)
	case errors.Is(err, scheduleRepo.ErrNotFound):
		return nil, newError(ErrSlotNotFound, "slot %s not found", slotID)
	case err != nil:
		return nil, s.storeError("book slot", err)
	}

	s.logger().Info("slot booked",
		zap.String("slotID", slotID),
		zap.String("appointmentID", appointmentID),
		zap.String("professionalID", loc.ProfessionalID),
		zap.String("date", slot.Date))
	return slot, nil
}

// UnbookSlot moves a slot back to Free. Unbooking a free slot is a no-op.
func (s *DefaultScheduleService) UnbookSlot(ctx context.Context, slotID string) (*models.Slot, error) {
	loc, release, err := s.lockSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	defer release()

	if !loc.Slot.IsBooked {
		return &loc.Slot, nil
	}

	slot, err := s.Repo.MarkSlotFree(ctx, slotID)
	switch {
	case errors.Is(err, scheduleRepo.ErrSlotFree):
		current, findErr := s.Repo.FindSlot(ctx, slotID)
		if findErr != nil {
			return nil, s.slotLookupError(slotID, findErr)
		}
		return &current.Slot, nil
	case errors.Is(err, scheduleRepo.ErrNotFound):
		return nil, newError(ErrSlotNotFound, "slot %s not found", slotID)
	case err != nil:
		return nil, s.storeError("unbook slot", err)
	}

	s.logger().Info("slot released",
		zap.String("slotID", slotID),
		zap.String("professionalID", loc.ProfessionalID),
		zap.String("date", slot.Date))
	return slot, nil
}

// lockSlot resolves the slot's day and holds that day's lock. The slot is
// re-read under the lock so the caller sees state no builder can be rewriting.
func (s *DefaultScheduleService) lockSlot(ctx context.Context, slotID string) (*scheduleRepo.SlotLocation, func(), error) {
	if strings.TrimSpace(slotID) == "" {
		return nil, nil, newError(ErrInvalidRequest, "slotId is required")
	}
	loc, err := s.Repo.FindSlot(ctx, slotID)
	if err != nil {
		return nil, nil, s.slotLookupError(slotID, err)
	}
	if s.Locks == nil {
		return loc, func() {}, nil
	}

	release, err := s.Locks.Acquire(ctx, locks.ScheduleDateKey(loc.ProfessionalID, loc.Slot.Date))
	if err != nil {
		return nil, nil, s.lockError(loc.ProfessionalID, err)
	}
	loc, err = s.Repo.FindSlot(ctx, slotID)
	if err != nil {
		release()
		return nil, nil, s.slotLookupError(slotID, err)
	}
	return loc, release, nil
}

func (s *DefaultScheduleService) slotLookupError(slotID string, err error) error {
	if errors.Is(err, scheduleRepo.ErrNotFound) {
		return newError(ErrSlotNotFound, "slot %s not found", slotID)
	}
	return s.storeError("find slot", err)
}
